/*
Package seamcarve is a content aware image resize library, which shrinks the source image
both horizontally and vertically by repeatedly removing its least important seams.

A seam is a connected path of pixels crossing the image from top to bottom. The energy of
every pixel is the magnitude of the color gradient around it, a dynamic programming table
propagates the cheapest cumulative energy from the bottom row upwards and the seam is
walked greedily down from the cheapest pixel of the first row. Horizontal seams are removed
by running the same carver on the transposed image.

The package provides a command line interface. To check the supported flags type:

	$ seamcarve --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/seamcarve/seamcarve"
	)

	func main() {
		p := &seamcarve.Processor{
			NewWidth:  300,
			NewHeight: 200,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package seamcarve
