// Package storage persists register files as one slot file per register.
//
// Each slot is named after its register (x0.bin to x15.bin) and holds exactly
// 4 bytes, the register value as a big-endian unsigned integer. A missing slot
// is equivalent to a stored zero.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/Manu343726/cpx/pkg/hw/cpu"
	"github.com/spf13/afero"
)

// Size in bytes of a register slot
const SlotSize = 4

// Default directory holding the register slots
const DefaultDirectory = "registers/"

var ErrMalformedSlot = errors.New("malformed register slot")

// Store reads and writes register slots within a directory
type Store struct {
	fs  afero.Fs
	dir string
	log *slog.Logger
}

// Creates a store keeping its slots in the given directory of fs
func MakeStore(filesystem afero.Fs, dir string) *Store {
	return &Store{
		fs:  filesystem,
		dir: dir,
		log: slog.New(slog.DiscardHandler),
	}
}

// Sets the logger used to report slot operations
func (s *Store) WithLogger(log *slog.Logger) *Store {
	s.log = log
	return s
}

// Returns the directory holding the slots
func (s *Store) Directory() string {
	return s.dir
}

// Returns the file name of a register slot, relative to the store directory
func SlotName(index int) string {
	return cpu.RegisterName(index) + ".bin"
}

// Returns the path of a register slot
func (s *Store) Slot(index int) string {
	return filepath.Join(s.dir, SlotName(index))
}

// Encodes a register value into its slot representation
func EncodeSlot(value cpu.Word) []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, SlotSize), value)
}

// Decodes the contents of a slot
func DecodeSlot(data []byte) (cpu.Word, error) {
	if len(data) != SlotSize {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSlot, SlotSize, len(data))
	}

	return binary.BigEndian.Uint32(data), nil
}

// Reads the value stored in a slot. A missing slot reads as zero.
func (s *Store) ReadSlot(index int) (cpu.Word, error) {
	data, err := afero.ReadFile(s.fs, s.Slot(index))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	value, err := DecodeSlot(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.Slot(index), err)
	}

	return value, nil
}

// Writes a value into a slot. The value is written to a temporary file first
// and then renamed over the slot, so a failed write leaves the previous value.
func (s *Store) WriteSlot(index int, value cpu.Word) error {
	path := s.Slot(index)
	tmp := path + ".tmp"

	if err := afero.WriteFile(s.fs, tmp, EncodeSlot(value), 0o644); err != nil {
		return err
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		s.fs.Remove(tmp)
		return err
	}

	return nil
}

// Loads every register from its slot.
//
// Slots that cannot be read or are malformed leave their register at zero and are
// reported together in the returned error. Other registers still load.
func (s *Store) Load(rf *cpu.RegisterFile) error {
	var errs []error

	for i := range cpu.RegisterCount {
		value, err := s.ReadSlot(i)
		if err != nil {
			errs = append(errs, err)
			value = 0
		}

		if err := rf.Set(i, uint64(value)); err != nil {
			errs = append(errs, err)
		}
	}

	s.log.Debug("registers loaded", "directory", s.dir, "registers", rf.String(), "errors", len(errs))
	return errors.Join(errs...)
}

// Writes every register into its slot, creating the directory if needed.
//
// Slots are written independently: a failure on one slot is reported but does
// not prevent writing the others.
func (s *Store) Save(rf *cpu.RegisterFile) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create register directory '%s': %w", s.dir, err)
	}

	var errs []error
	values := rf.Values()

	for i, value := range values {
		if err := s.WriteSlot(i, value); err != nil {
			errs = append(errs, err)
		}
	}

	s.log.Debug("registers saved", "directory", s.dir, "registers", rf.String(), "errors", len(errs))
	return errors.Join(errs...)
}

// Removes every slot, which is equivalent to storing zero in all registers
func (s *Store) Clear() error {
	var errs []error

	for i := range cpu.RegisterCount {
		if err := s.fs.Remove(s.Slot(i)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
