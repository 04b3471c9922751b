package chart

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"gonum.org/v1/plot"
)

// Save writes p to path; the image format follows the file extension.
func Save(p *plot.Plot, path string, opts Options) error {
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// Encode renders p in opts.Format.
func Encode(p *plot.Plot, opts Options) ([]byte, error) {
	w, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	var b bytes.Buffer
	if _, err := w.WriteTo(&b); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return b.Bytes(), nil
}

// openViewer starts the platform image viewer and does not wait for it.
var openViewer = func(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// Show writes p to a temporary file and opens it. It returns the file path.
func Show(p *plot.Plot, opts Options) (string, error) {
	data, err := Encode(p, opts)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "covidplot-*."+opts.Format)
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := openViewer(f.Name()); err != nil {
		return f.Name(), fmt.Errorf("failed to open viewer: %w", err)
	}
	return f.Name(), nil
}
