package gtx8

import (
	"strconv"

	"github.com/cupid-development/goodix-cfg-bin/internal/layout"
)

// Document assembles the ordered value tree for the whole file: the header,
// the package headers in offset-table order, and the raw IC configs keyed by
// cfg_type in first-appearance order. Marshaling the result with
// encoding/json yields the canonical textual rendering.
func (c *CfgBin) Document() *layout.Object {
	root := layout.NewObject()
	root.Set("head", c.headObj)

	pkgs := make([]*layout.Object, 0, len(c.Packages))
	for i := range c.Packages {
		p := &c.Packages[i]
		obj := layout.NewObject()
		obj.Set("cnst_info", p.constInfo)
		obj.Set("reg_info", p.regInfo)
		obj.Set("pkg_len", uint64(p.Span))
		pkgs = append(pkgs, obj)
	}
	root.Set("cfg_pkgs", pkgs)

	ics := layout.NewObject()
	for i := range c.Packages {
		p := &c.Packages[i]
		ic := layout.NewObject()
		ic.Set("len", uint64(len(p.Config)))
		ic.Set("data", layout.Bytes(p.Config))
		ics.Set(strconv.Itoa(int(p.CfgType)), ic)
	}
	root.Set("ic_configs", ics)

	return root
}
