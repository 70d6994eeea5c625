// Package gtx8 decodes Goodix GTX8 touch-controller cfg group files. The
// field catalog mirrors the vendor kernel driver's structure definitions; the
// byte-level walking is delegated to the schema-driven layout decoder.
package gtx8

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cupid-development/goodix-cfg-bin/internal/layout"
)

// Head is the decoded cfg group file header.
type Head struct {
	// BinLen is the total file length the header declares
	BinLen uint32

	// Checksum is the stored 8-bit wrapping sum over bytes [5, len)
	Checksum uint8

	// BinVersion is the four raw version bytes
	BinVersion []byte

	// PkgNum is the number of config packages in the file
	PkgNum uint8
}

// Version renders the header version bytes in dotted decimal form.
func (h *Head) Version() string {
	parts := make([]byte, 0, len(h.BinVersion)*4)
	for i, b := range h.BinVersion {
		if i > 0 {
			parts = append(parts, '.')
		}
		parts = strconv.AppendUint(parts, uint64(b), 10)
	}
	return string(parts)
}

// Package is one decoded config package: the const info and register info
// blocks plus the raw IC config payload that follows them.
type Package struct {
	// Span is the package's total byte count, derived from the offset table
	// (next offset minus this one, or end of file for the last package)
	Span uint32

	// ICType is the controller name from const info, trimmed at the first NUL
	ICType string

	CfgType  uint8
	SensorID uint8

	XResOffset    uint16
	YResOffset    uint16
	TriggerOffset uint16

	// Config is the raw IC config payload (Span minus the 121-byte package head)
	Config []byte

	constInfo *layout.Object
	regInfo   *layout.Object
}

// Reg returns the register address decoded for the named slot (see RegNames).
func (p *Package) Reg(name string) uint16 {
	reg := p.regInfo.Object(name)
	if reg == nil {
		return 0
	}
	return uint16(reg.Uint("addr"))
}

// CfgBin is a fully decoded GTX8 cfg group file.
type CfgBin struct {
	Head     Head
	Packages []Package

	headObj *layout.Object
}

// Parse decodes a complete cfg group buffer. The buffer is only read, never
// mutated, and on any error no partial result is returned. Truncation at any
// read point surfaces as *layout.TruncatedInputError; failed content checks
// (declared length, checksum, offset ordering, payload bounds) surface as
// *layout.SchemaViolationError.
func Parse(data []byte) (*CfgBin, error) {
	dec := layout.NewDecoder(data)
	prelude, err := dec.Decode(preludeSchema)
	if err != nil {
		return nil, err
	}

	head := Head{
		BinLen:     uint32(prelude.Uint("bin_len")),
		Checksum:   uint8(prelude.Uint("checksum")),
		BinVersion: prelude.Bytes("bin_version"),
		PkgNum:     uint8(prelude.Uint("pkg_num")),
	}

	if int(head.BinLen) != len(data) {
		return nil, &layout.SchemaViolationError{
			Field:  "bin_len",
			Reason: fmt.Sprintf("declared length %d, buffer holds %d bytes", head.BinLen, len(data)),
		}
	}
	if sum := checksum(data); sum != head.Checksum {
		return nil, &layout.SchemaViolationError{
			Field:  "checksum",
			Reason: fmt.Sprintf("stored 0x%02X, computed 0x%02X", head.Checksum, sum),
		}
	}

	offsets := prelude.Objects("pkg_offsets")
	packages := make([]Package, 0, len(offsets))
	for i, entry := range offsets {
		name := fmt.Sprintf("cfg_pkgs[%d]", i)
		start := int(entry.Uint("offset"))

		end := len(data)
		if i+1 < len(offsets) {
			end = int(offsets[i+1].Uint("offset"))
			if end <= start {
				return nil, &layout.SchemaViolationError{
					Field:  name,
					Reason: fmt.Sprintf("package offsets not strictly increasing (%d then %d)", start, end),
				}
			}
		}
		if end > len(data) {
			return nil, &layout.TruncatedInputError{Field: name, Need: end, Have: len(data)}
		}
		if start+PkgHeadLen > len(data) {
			return nil, &layout.TruncatedInputError{Field: name, Need: start + PkgHeadLen, Have: len(data)}
		}
		span := end - start
		if span < PkgHeadLen {
			return nil, &layout.SchemaViolationError{
				Field:  name,
				Reason: fmt.Sprintf("package spans %d bytes, smaller than the %d-byte package head", span, PkgHeadLen),
			}
		}
		if span-PkgHeadLen > MaxConfigSize {
			return nil, &layout.SchemaViolationError{
				Field:  name,
				Reason: fmt.Sprintf("config payload of %d bytes exceeds the %d-byte maximum", span-PkgHeadLen, MaxConfigSize),
			}
		}

		pkg, err := parsePackage(data[start:end], span)
		if err != nil {
			return nil, fmt.Errorf("%s at offset %d: %w", name, start, err)
		}
		packages = append(packages, *pkg)
	}

	// The document's head section is the prelude minus the offset table,
	// which is bookkeeping rather than a named section of the file.
	headObj := layout.NewObject()
	for _, key := range prelude.Keys() {
		if key == "pkg_offsets" {
			continue
		}
		v, _ := prelude.Get(key)
		headObj.Set(key, v)
	}

	return &CfgBin{Head: head, Packages: packages, headObj: headObj}, nil
}

// parsePackage decodes one package's const info and register info blocks and
// captures the trailing IC config payload.
func parsePackage(data []byte, span int) (*Package, error) {
	dec := layout.NewDecoder(data)
	constInfo, err := dec.Decode(constInfoSchema)
	if err != nil {
		return nil, err
	}
	regInfo, err := dec.Decode(regInfoSchema)
	if err != nil {
		return nil, err
	}

	config := make([]byte, span-PkgHeadLen)
	copy(config, data[PkgHeadLen:span])

	return &Package{
		Span:          uint32(span),
		ICType:        icTypeString(constInfo.Bytes("ic_type")),
		CfgType:       uint8(constInfo.Uint("cfg_type")),
		SensorID:      uint8(constInfo.Uint("sensor_id")),
		XResOffset:    uint16(constInfo.Uint("x_res_offset")),
		YResOffset:    uint16(constInfo.Uint("y_res_offset")),
		TriggerOffset: uint16(constInfo.Uint("trigger_offset")),
		Config:        config,
		constInfo:     constInfo,
		regInfo:       regInfo,
	}, nil
}

// checksum computes the 8-bit wrapping sum the header asserts, covering every
// byte from the version field onward.
func checksum(data []byte) byte {
	var sum byte
	for _, b := range data[binVersionStart:] {
		sum += b
	}
	return sum
}

// icTypeString trims a fixed-width controller name at its first NUL.
func icTypeString(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}
