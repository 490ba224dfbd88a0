package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

var ErrUnexpectedStatus = errors.New("unexpected seed response status")

// Importer decodes a seed payload into records ready to be stored.
type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
