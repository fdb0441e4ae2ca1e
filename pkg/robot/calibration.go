package robot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Trims holds the calibration offset of every channel, indexed by Joint.
type Trims [NumJoints]int8

// TrimStore persists one signed trim byte per channel at addresses 0..3.
type TrimStore interface {
	ReadTrim(addr int) (int8, error)
	WriteTrim(addr int, trim int8) error
}

// LoadTrims reads all channel trims from the store.
func LoadTrims(s TrimStore) (Trims, error) {
	var t Trims
	for _, j := range AllJoints() {
		v, err := s.ReadTrim(int(j))
		if err != nil {
			return Trims{}, fmt.Errorf("read trim %s: %w", j, err)
		}
		t[j] = v
	}
	return t, nil
}

// TrimsWriter is implemented by stores that can write all four trims in a
// single update.
type TrimsWriter interface {
	WriteTrims(t Trims) error
}

// SaveTrims writes all channel trims to the store, in one update when the
// store supports it.
func SaveTrims(s TrimStore, t Trims) error {
	if w, ok := s.(TrimsWriter); ok {
		return w.WriteTrims(t)
	}
	for _, j := range AllJoints() {
		if err := s.WriteTrim(int(j), t[j]); err != nil {
			return fmt.Errorf("write trim %s: %w", j, err)
		}
	}
	return nil
}

// EEPROMFile is a TrimStore backed by a small binary image file, one
// two's-complement byte per address. A missing file reads as all zeros.
type EEPROMFile struct {
	Path string
}

func checkAddr(addr int) error {
	if addr < 0 || addr >= NumJoints {
		return fmt.Errorf("trim address %d out of range", addr)
	}
	return nil
}

func (e EEPROMFile) image() ([]byte, error) {
	data, err := os.ReadFile(e.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return make([]byte, NumJoints), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read eeprom image: %w", err)
	}
	if len(data) < NumJoints {
		data = append(data, make([]byte, NumJoints-len(data))...)
	}
	return data, nil
}

// ReadTrim returns the trim stored at addr.
func (e EEPROMFile) ReadTrim(addr int) (int8, error) {
	if err := checkAddr(addr); err != nil {
		return 0, err
	}
	data, err := e.image()
	if err != nil {
		return 0, err
	}
	return int8(data[addr]), nil
}

// WriteTrim stores trim at addr, leaving the other addresses untouched.
func (e EEPROMFile) WriteTrim(addr int, trim int8) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	data, err := e.image()
	if err != nil {
		return err
	}
	data[addr] = byte(trim)
	if err := os.WriteFile(e.Path, data, 0644); err != nil {
		return fmt.Errorf("write eeprom image: %w", err)
	}
	return nil
}
