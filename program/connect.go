/*
File    : volsung/program/connect.go
*/
package program

import "github.com/volsung-lang/volsung/verr"

// checkPort validates that idx is a legal port index of the given
// direction for the node named name, returning its handle.
func (p *Program) checkPort(name string, idx int, output bool) (handle, error) {
	h, ok := p.nodeByName[name]
	if !ok {
		return invalidHandle, verr.New(verr.NameError, "no such object %q", name)
	}
	n := p.nodeImpls[h]
	arity := n.Inputs()
	if output {
		arity = n.Outputs()
	}
	if idx < 0 || idx >= arity {
		return invalidHandle, verr.New(verr.RangeError, "port %d out of range for %q (arity %d)", idx, name, arity)
	}
	return h, nil
}

// checkIOAndConnectObjects validates both endpoints of a single edge and
// wires it, mirroring Program::check_io_and_connect_objects.
func (p *Program) checkIOAndConnectObjects(outName string, outIdx int, inName string, inIdx int) error {
	srcH, err := p.checkPort(outName, outIdx, true)
	if err != nil {
		return err
	}
	dstH, err := p.checkPort(inName, inIdx, false)
	if err != nil {
		return err
	}
	p.edgesByDst[dstH] = append(p.edgesByDst[dstH], channel{
		srcHandle: int(srcH), srcIndex: outIdx,
		dstHandle: int(dstH), dstIndex: inIdx,
	})
	return nil
}

// expectObject errors unless name names a plain object (not a group).
func (p *Program) expectObject(name string) error {
	if _, ok := p.groupSizes[name]; ok {
		return verr.New(verr.TypeMismatch, "%q is a group, expected a single object", name)
	}
	if _, ok := p.nodeByName[name]; !ok {
		return verr.New(verr.NameError, "no such object %q", name)
	}
	return nil
}

// expectGroup errors unless name names a declared group.
func (p *Program) expectGroup(name string) error {
	if _, ok := p.groupSizes[name]; !ok {
		if _, isObj := p.nodeByName[name]; isObj {
			return verr.New(verr.TypeMismatch, "%q is a single object, expected a group", name)
		}
		return verr.New(verr.NameError, "no such group %q", name)
	}
	return nil
}

// ConnectObjects wires outName's outIdx output port to inName's inIdx
// input port according to connType, expanding group fan-in/fan-out as
// the five connection operators require. It mirrors
// Program::connect_objects exactly, including many_to_many's ("parallel",
// operator "=>") requirement that both groups have identical size.
func (p *Program) ConnectObjects(outName string, outIdx int, inName string, inIdx int, connType ConnectionType) error {
	switch connType {
	case OneToOne:
		if err := p.expectObject(outName); err != nil {
			return err
		}
		if err := p.expectObject(inName); err != nil {
			return err
		}
		return p.checkIOAndConnectObjects(outName, outIdx, inName, inIdx)

	case ManyToOne:
		if err := p.expectGroup(outName); err != nil {
			return err
		}
		if err := p.expectObject(inName); err != nil {
			return err
		}
		n := p.groupSizes[outName]
		for i := 0; i < n; i++ {
			if err := p.checkIOAndConnectObjects(groupMemberName(outName, i), outIdx, inName, inIdx); err != nil {
				return err
			}
		}
		return nil

	case OneToMany:
		if err := p.expectObject(outName); err != nil {
			return err
		}
		if err := p.expectGroup(inName); err != nil {
			return err
		}
		n := p.groupSizes[inName]
		for i := 0; i < n; i++ {
			if err := p.checkIOAndConnectObjects(outName, outIdx, groupMemberName(inName, i), inIdx); err != nil {
				return err
			}
		}
		return nil

	case Biclique:
		if err := p.expectGroup(outName); err != nil {
			return err
		}
		if err := p.expectGroup(inName); err != nil {
			return err
		}
		na, nb := p.groupSizes[outName], p.groupSizes[inName]
		for a := 0; a < na; a++ {
			for b := 0; b < nb; b++ {
				if err := p.checkIOAndConnectObjects(groupMemberName(outName, a), outIdx, groupMemberName(inName, b), inIdx); err != nil {
					return err
				}
			}
		}
		return nil

	case ManyToMany:
		if err := p.expectGroup(outName); err != nil {
			return err
		}
		if err := p.expectGroup(inName); err != nil {
			return err
		}
		na, nb := p.groupSizes[outName], p.groupSizes[inName]
		if na != nb {
			return verr.New(verr.ArityError, "group sizes to be connected in parallel are not identical: %d vs %d", na, nb)
		}
		for i := 0; i < na; i++ {
			if err := p.checkIOAndConnectObjects(groupMemberName(outName, i), outIdx, groupMemberName(inName, i), inIdx); err != nil {
				return err
			}
		}
		return nil

	default:
		return verr.New(verr.ParseError, "unknown connection type")
	}
}
