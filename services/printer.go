package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Printer is the platform print boundary. The engine renders a label and
// hands the PNG over; what "print" physically means is the implementation's
// business.
type Printer interface {
	Print(ctx context.Context, orderID uint, label []byte) error
}

// SpoolPrinter drops rendered labels into a spool directory watched by the
// shop's print daemon.
type SpoolPrinter struct {
	dir string
}

// NewSpoolPrinter creates a printer writing into the given directory.
func NewSpoolPrinter(dir string) *SpoolPrinter {
	return &SpoolPrinter{dir: dir}
}

// Print writes the label PNG into the spool directory.
func (p *SpoolPrinter) Print(ctx context.Context, orderID uint, label []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}
	path := filepath.Join(p.dir, LabelFileName(orderID))
	if err := os.WriteFile(path, label, 0o644); err != nil {
		return fmt.Errorf("failed to spool label for order %d: %w", orderID, err)
	}
	return nil
}
