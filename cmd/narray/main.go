// Package main provides the narray CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/born-ml/narray/backend/cpu"
	"github.com/born-ml/narray/internal/serialization"
	"github.com/born-ml/narray/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "narray: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(w, "narray %s\n", version)
		return nil
	case "stats":
		return statsCmd(args[1:], w)
	case "layout":
		return layoutCmd(args[1:], w)
	case "inspect":
		return inspectCmd(args[1:], w)
	default:
		usage(w)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "narray - strided n-dimensional arrays for Go")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                 Show version")
	fmt.Fprintln(w, "  stats <values...>       Mean and variance of the values (nan allowed)")
	fmt.Fprintln(w, "  layout [-F] <dims...>   Strides and loop plans of a dense shape")
	fmt.Fprintln(w, "  inspect <file>          Tensors and statistics of a SafeTensors file")
}

func newBackend() (*cpu.Backend, error) {
	cfg := cpu.DefaultConfig()
	if os.Getenv("NARRAY_DEBUG") != "" {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return cpu.NewWithConfig(cfg)
}

func statsCmd(args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("stats: no values")
	}
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return errors.Wrapf(err, "stats: argument %d", i+1)
		}
		values[i] = v
	}

	backend, err := newBackend()
	if err != nil {
		return err
	}
	x, err := tensor.FromSlice(values, tensor.MustShape(len(values)), backend)
	if err != nil {
		return errors.Wrap(err, "stats")
	}
	s, err := x.Stats()
	if err != nil {
		return errors.Wrap(err, "stats")
	}

	fmt.Fprintf(w, "size:            %d\n", s.Size())
	fmt.Fprintf(w, "nanSize:         %d\n", s.NanSize())
	fmt.Fprintf(w, "mean:            %g\n", s.Mean())
	fmt.Fprintf(w, "variance:        %g\n", s.Variance())
	fmt.Fprintf(w, "sampleVariance:  %g\n", s.SampleVariance())
	fmt.Fprintf(w, "nanMean:         %g\n", s.NanMean())
	fmt.Fprintf(w, "nanVariance:     %g\n", s.NanVariance())
	fmt.Fprintf(w, "nanCount:        %d\n", x.NanCount())
	fmt.Fprintf(w, "zeroCount:       %d\n", x.ZeroCount())
	return nil
}

func layoutCmd(args []string, w io.Writer) error {
	order := tensor.C
	if len(args) > 0 && args[0] == "-F" {
		order = tensor.F
		args = args[1:]
	}
	if len(args) == 0 {
		return errors.New("layout: no dimensions")
	}
	dims := make([]int, len(args))
	for i, a := range args {
		d, err := strconv.Atoi(a)
		if err != nil {
			return errors.Wrapf(err, "layout: dimension %d", i+1)
		}
		dims[i] = d
	}
	shape, err := tensor.NewShape(dims...)
	if err != nil {
		return errors.Wrap(err, "layout")
	}
	l, err := tensor.DenseLayout(shape, 0, order)
	if err != nil {
		return errors.Wrap(err, "layout")
	}

	fmt.Fprintf(w, "shape:   %s (%d elements)\n", shape, shape.Size())
	fmt.Fprintf(w, "layout:  %s\n", l)
	fmt.Fprintf(w, "storage: %s\n", l.StorageFastOrder())
	for _, o := range []tensor.Order{tensor.C, tensor.F} {
		lp := tensor.NewLoop(l, o)
		fmt.Fprintf(w, "loop %s:  %d segment(s) of %d, step %d, offsets %s\n",
			o, len(lp.Offsets), lp.Size, lp.Step, head(lp.Offsets, 8))
	}
	return nil
}

// head formats at most n values of xs.
func head(xs []int, n int) string {
	parts := make([]string, 0, min(len(xs), n)+1)
	for _, x := range xs[:min(len(xs), n)] {
		parts = append(parts, strconv.Itoa(x))
	}
	if len(xs) > n {
		parts = append(parts, "...")
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func inspectCmd(args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("inspect: expected one file")
	}
	a, err := serialization.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "inspect %s", args[0])
	}
	backend, err := newBackend()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDTYPE\tSHAPE\tMEAN\tSTD")
	for _, name := range a.Names() {
		info, err := a.Info(name)
		if err != nil {
			return errors.Wrap(err, "inspect")
		}
		shape := tensor.MustShape(info.Shape...)
		mean, std := "-", "-"
		s, ok, err := stats(a, name, info.DType, backend)
		if err != nil {
			return errors.Wrapf(err, "inspect %s", name)
		}
		if ok {
			mean = strconv.FormatFloat(s.NanMean(), 'g', 6, 64)
			std = strconv.FormatFloat(s.NanStd(), 'g', 6, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, info.DType, shape, mean, std)
	}
	return tw.Flush()
}

// stats loads a floating point tensor and summarizes it. Integer tensors
// report ok == false.
func stats(a *serialization.Archive, name, dtype string, b *cpu.Backend) (s tensor.Statistics, ok bool, err error) {
	switch dtype {
	case serialization.DTypeF32:
		x, err := serialization.Get[float32](a, name, b)
		if err != nil {
			return s, false, err
		}
		s, err = x.Stats()
		return s, err == nil, err
	case serialization.DTypeF64:
		x, err := serialization.Get[float64](a, name, b)
		if err != nil {
			return s, false, err
		}
		s, err = x.Stats()
		return s, err == nil, err
	}
	return s, false, nil
}
