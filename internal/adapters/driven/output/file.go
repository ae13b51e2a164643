package output

import (
	"bufio"
	"fmt"
	"os"

	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// writeFile writes data to path through a buffered writer.
// The file is removed if any step fails.
func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing: %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func checkGeometry(g geom.T) error {
	if g == nil {
		return fmt.Errorf("%w: no geometry", domain.ErrInvalidInput)
	}
	return nil
}
