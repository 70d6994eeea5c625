package gtx8

import "github.com/cupid-development/goodix-cfg-bin/internal/layout"

// Layout constants taken from the GTX8 kernel driver structure definitions.
const (
	// binVersionStart is the first byte the header checksum covers
	binVersionStart = 5

	binVersionLen   = 4
	headReservedLen = 6
	offsetLen       = 2
	icTypeNameLen   = 15
	pidLen          = 8
	vidLen          = 8
	fwMaskLen       = 9
	fwPatchLen      = 4
	regReservedLen  = 9

	// HeadLen is the fixed header size including its reserved padding.
	HeadLen = 10 + headReservedLen

	// ConstInfoLen and RegInfoLen are the two fixed blocks at the start of
	// every package; PkgHeadLen is their sum.
	ConstInfoLen = 56
	RegInfoLen   = 65
	PkgHeadLen   = ConstInfoLen + RegInfoLen

	// MaxConfigSize bounds a single IC config payload.
	MaxConfigSize = 4096
)

// RegNames lists the fourteen per-package register slots in wire order.
var RegNames = []string{
	"cfg_send_flag",
	"version_base",
	"pid",
	"vid",
	"sensor_id",
	"fw_mask",
	"fw_status",
	"cfg_addr",
	"esd",
	"command",
	"coor",
	"gesture",
	"fw_request",
	"proximity",
}

// headSchema mirrors goodix_cfg_bin_head plus the reserved padding that
// follows it on the wire.
var headSchema = []layout.Field{
	{Name: "bin_len", Kind: layout.KindUint, Width: 4},
	{Name: "checksum", Kind: layout.KindUint, Width: 1},
	{Name: "bin_version", Kind: layout.KindBytes, Width: binVersionLen},
	{Name: "pkg_num", Kind: layout.KindUint, Width: 1},
	{Name: "reserved", Kind: layout.KindBytes, Width: headReservedLen},
}

// preludeSchema covers the header and the pkg_num-gated package offset table.
var preludeSchema = append(append([]layout.Field{}, headSchema...), layout.Field{
	Name:    "pkg_offsets",
	Kind:    layout.KindStruct,
	CountBy: "pkg_num",
	Fields: []layout.Field{
		{Name: "offset", Kind: layout.KindUint, Width: offsetLen},
	},
})

// constInfoSchema mirrors goodix_cfg_pkg_const_info.
var constInfoSchema = []layout.Field{
	{Name: "pkg_len", Kind: layout.KindUint, Width: 4},
	{Name: "ic_type", Kind: layout.KindBytes, Width: icTypeNameLen},
	{Name: "cfg_type", Kind: layout.KindUint, Width: 1},
	{Name: "sensor_id", Kind: layout.KindUint, Width: 1},
	{Name: "hw_pid", Kind: layout.KindBytes, Width: pidLen},
	{Name: "hw_vid", Kind: layout.KindBytes, Width: vidLen},
	{Name: "fw_mask", Kind: layout.KindBytes, Width: fwMaskLen},
	{Name: "fw_patch", Kind: layout.KindBytes, Width: fwPatchLen},
	{Name: "x_res_offset", Kind: layout.KindUint, Width: 2},
	{Name: "y_res_offset", Kind: layout.KindUint, Width: 2},
	{Name: "trigger_offset", Kind: layout.KindUint, Width: 2},
}

// regSchema mirrors goodix_cfg_pkg_reg.
var regSchema = []layout.Field{
	{Name: "addr", Kind: layout.KindUint, Width: 2},
	{Name: "reserved1", Kind: layout.KindUint, Width: 1},
	{Name: "reserved2", Kind: layout.KindUint, Width: 1},
}

// regInfoSchema mirrors goodix_cfg_pkg_reg_info: one register slot per entry
// of RegNames followed by reserved padding.
var regInfoSchema = func() []layout.Field {
	fields := make([]layout.Field, 0, len(RegNames)+1)
	for _, name := range RegNames {
		fields = append(fields, layout.Field{Name: name, Kind: layout.KindStruct, Fields: regSchema})
	}
	return append(fields, layout.Field{Name: "reserved", Kind: layout.KindBytes, Width: regReservedLen})
}()
