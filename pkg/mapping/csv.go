package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	interrors "github.com/fleetglass/agentmap/internal/errors"
)

// ReadHeader tokenizes the header row of raw CSV text without analyzing it,
// returning the ordered header strings and any sample rows read. Callers
// that label corpora or build override UIs use this to see the exact header
// identities the analyzer would.
func ReadHeader(r io.Reader) ([]string, [][]string, error) {
	return readHeaderAndSamples(r, 0)
}

// readHeaderAndSamples reads the header row and up to sampleLimit data rows
// from raw CSV text. Only the header row is semantically interpreted; sample
// rows feed the value-shape tie-break. Ragged rows are tolerated since the
// matcher indexes cells positionally.
func readHeaderAndSamples(r io.Reader, sampleLimit int) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, interrors.WrapValidationError("read_csv_header",
				fmt.Errorf("no header row: %w", interrors.ErrEmptyInput))
		}
		return nil, nil, interrors.WrapValidationError("read_csv_header",
			fmt.Errorf("%v: %w", err, interrors.ErrInvalidInput))
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff") // UTF-8 BOM
	}

	var samples [][]string
	for len(samples) < sampleLimit {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed data rows do not invalidate the header analysis;
			// sampling simply stops early.
			break
		}
		samples = append(samples, row)
	}

	return header, samples, nil
}
