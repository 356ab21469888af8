package parm

import (
	"testing"
)

func TestAddAtomType(Te *testing.T) {
	P := NewParameterSet()
	ct := P.AddAtomType("CT", 12.01, 6)
	P.AddAtomType("N", 14.01, 7)
	if ct.Index != 1 || P.AtomTypes["N"].Index != 2 {
		Te.Error("indices should follow first-seen order")
	}
	//re-adding only updates the mass
	again := P.AddAtomType("CT", 12.02, 99)
	if again != ct || ct.Mass != 12.02 || ct.AtomicNumber != 6 || ct.Index != 1 {
		Te.Error("re-adding a type should only touch its mass", *ct)
	}
	if len(P.TypeNames()) != 2 {
		Te.Error("wrong type order", P.TypeNames())
	}
}

func TestImproperKeyCanonical(Te *testing.T) {
	ref := ImproperKey("X", "X", "C", "O")
	for _, k := range []TorsionKey{
		ImproperKey("X", "O", "C", "X"),
		ImproperKey("O", "X", "C", "X"),
	} {
		if k != ref {
			Te.Error("flanking order should not matter:", k, ref)
		}
	}
	if ref != (TorsionKey{"X", "X", "C", "O"}) {
		Te.Error("wildcards should sort first", ref)
	}
	plain := ImproperKey("O2", "C", "N", "O1")
	if plain != (TorsionKey{"C", "O1", "N", "O2"}) {
		Te.Error("wrong canonical order without wildcards", plain)
	}
}

func TestTorsionListSharing(Te *testing.T) {
	P := NewParameterSet()
	key := TorsionKey{"H", "N", "C", "O"}
	l := P.AddDihedralList(key, &DihedralType{PhiK: 2.5, Per: 2})
	*l = append(*l, &DihedralType{PhiK: 2.0, Per: 1})
	rl := P.DihedralTypes[key.Reverse()]
	if rl != l || len(*rl) != 2 {
		Te.Error("appended terms should be visible through the reversed key")
	}
	if len(P.DihedralKeys()) != 1 {
		Te.Error("only the first-seen orientation should be listed", P.DihedralKeys())
	}
	//a fresh list replaces the old terms, under both orientations
	P.AddDihedralList(key.Reverse(), &DihedralType{PhiK: 1.0, Per: 3})
	if len(*P.DihedralTypes[key]) != 1 {
		Te.Error("restarting a torsion should drop the old terms")
	}
}

func TestAddNBFixSorted(Te *testing.T) {
	P := NewParameterSet()
	P.AddNBFix("ZN", "N", NBFix{Eps: 0.05, Rmin: 3.0})
	if _, ok := P.NBFixTypes[PairKey{"N", "ZN"}]; !ok {
		Te.Error("pair overrides should be stored under the sorted pair")
	}
	P.AddNBFix("N", "ZN", NBFix{Eps: 0.06, Rmin: 3.1})
	if len(P.NBFixKeys()) != 1 || P.NBFixTypes[PairKey{"N", "ZN"}].Eps != 0.06 {
		Te.Error("the same pair in either order should overwrite, not duplicate")
	}
}

func TestElementGuessing(Te *testing.T) {
	if s := ElementByMass(12.0); s != "C" {
		Te.Error("12 amu should be carbon, got", s)
	}
	if s := ElementByMass(55.9); s != "Fe" {
		Te.Error("55.9 amu should be iron, got", s)
	}
	if z, ok := AtomicNumber("Zn"); !ok || z != 30 {
		Te.Error("wrong atomic number for Zn", z)
	}
	if _, ok := AtomicNumber("Qq"); ok {
		Te.Error("Qq should not be an element")
	}
	if ElementSymbol(0) != "EP" || ElementSymbol(8) != "O" || ElementSymbol(-1) != "" {
		Te.Error("wrong symbol lookups")
	}
}
