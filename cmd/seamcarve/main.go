package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/seamcarve/seamcarve"
	"github.com/seamcarve/seamcarve/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤││││  ├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘

Content aware image shrinking.
    Version: %s

Usage: seamcarve [flags] <image>

`

// defaultOutput is the file the carved image is saved to when no destination is given.
const defaultOutput = "output_resized.png"

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitLoad
	exitCarve
)

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("seamcarve", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		destination = flags.String("out", defaultOutput, "Destination")
		newWidth    = flags.Int("width", 0, "New width (asked interactively when omitted)")
		newHeight   = flags.Int("height", 0, "New height (asked interactively when omitted)")
		seamColor   = flags.String("color", seamcarve.DefaultSeamColor, "Seam color on the preview frames")
		previewDir  = flags.String("preview", "", "Directory where the preview frames are saved")
	)
	flags.Usage = func() {
		fmt.Fprintf(stderr, HelpBanner, Version)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		fmt.Fprintln(stderr, utils.DecorateText("\nPlease provide exactly one source image!", utils.ErrorMessage))
		return exitUsage
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	op := &seamcarve.Ops{
		Src: flags.Arg(0),
		Dst: *destination,
	}
	if op.Src == seamcarve.PipeName && !(set["width"] && set["height"]) {
		fmt.Fprintln(stderr, utils.DecorateText("Both -width and -height are required when reading the image from stdin", utils.ErrorMessage))
		return exitUsage
	}

	img, err := op.Load()
	if err != nil {
		fmt.Fprintln(stderr, utils.DecorateText(fmt.Sprintf("Error: %v", err), utils.ErrorMessage))
		return exitLoad
	}

	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	// Prompts go to stderr when the carved image itself is written to stdout.
	console := stdout
	if op.Dst == seamcarve.PipeName {
		console = stderr
	}
	fmt.Fprintf(console, "Image Height: %d, Image Width: %d\n", height, width)

	in := bufio.NewScanner(stdin)
	in.Split(bufio.ScanWords)
	if !set["height"] {
		if *newHeight, err = prompt(in, console, "Enter desired Height: "); err != nil {
			fmt.Fprintln(stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
			return exitUsage
		}
	}
	if !set["width"] {
		if *newWidth, err = prompt(in, console, "Enter desired Width: "); err != nil {
			fmt.Fprintln(stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
			return exitUsage
		}
	}

	proc := &seamcarve.Processor{
		NewWidth:  *newWidth,
		NewHeight: *newHeight,
		SeamColor: *seamColor,
	}
	if err := proc.Validate(width, height); err != nil {
		if errors.Is(err, seamcarve.ErrInvalidTargetDimensions) {
			fmt.Fprintln(console, "Target dimensions must be smaller than the original image dimensions to perform algorithm.")
			return exitOK
		}
		fmt.Fprintln(stderr, utils.DecorateText(fmt.Sprintf("Error: %v", err), utils.ErrorMessage))
		return exitCarve
	}
	if *previewDir != "" {
		fp, err := seamcarve.NewFramePreviewer(*previewDir)
		if err != nil {
			fmt.Fprintln(stderr, utils.DecorateText(fmt.Sprintf("Error: %v", err), utils.ErrorMessage))
			return exitCarve
		}
		proc.Preview = fp
	}

	spinner := newSpinner(stderr)

	// Capture CTRL-C signal, restore the cursor visibility and remove the unfinished output.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	finished := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(finished)
	}()
	go func() {
		select {
		case <-finished:
			return
		case <-signalChan:
		}
		if spinner != nil {
			spinner.RestoreCursor()
		}
		removePartialOutput(op)
		os.Exit(exitUsage)
	}()

	now := time.Now()
	if spinner != nil {
		spinner.Start()
	}
	err = op.Execute(proc, img)
	if spinner != nil {
		if err == nil {
			spinner.StopMsg = fmt.Sprintf("%s %s\n",
				utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
				utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage))
		}
		spinner.Stop()
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s%s\n",
			utils.DecorateText("\nError resizing the image:", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v", err), utils.DefaultMessage),
		)
		return exitCarve
	}

	if op.Dst != seamcarve.PipeName {
		fmt.Fprintf(console, "Seam carving complete!\nThe resized image has been saved as: %s\n",
			utils.DecorateText(filepath.Base(op.Dst), utils.SuccessMessage))
	}
	fmt.Fprintf(stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return exitOK
}

// removePartialOutput deletes the destination file, but only when this run
// has started writing it.
func removePartialOutput(op *seamcarve.Ops) {
	if op.Dst == seamcarve.PipeName || !op.Writing() {
		return
	}
	os.Remove(op.Dst)
}

// prompt asks for a single integer value.
func prompt(in *bufio.Scanner, out io.Writer, msg string) (int, error) {
	fmt.Fprint(out, msg)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return 0, fmt.Errorf("could not read the input: %w", err)
		}
		return 0, errors.New("no value provided")
	}
	val, err := strconv.Atoi(in.Text())
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid number", in.Text())
	}
	return val, nil
}

// newSpinner returns a progress indicator only when w is an interactive terminal.
func newSpinner(w io.Writer) *utils.Spinner {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("is resizing the image...", utils.DefaultMessage))

	s := utils.NewSpinner(msg, time.Millisecond*80, true)
	s.SetWriter(f)
	return s
}
