/*
 * read_test.go, part of goparm.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goParm is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package parm

import (
	"bufio"
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func fillString(P *ParameterSet, s string) error {
	return P.Fill(bufio.NewReader(strings.NewReader(s)))
}

//TestFrcmodRead reads the sample frcmod and checks every section made it
//into the database, including the 3-term torsion given with continuation
//lines.
func TestFrcmodRead(Te *testing.T) {
	P, err := FilesRead("test/frcmod.sample")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Fatal(err)
	}
	if len(P.Titles) != 1 || P.Titles[0] != "Sample modifications for goParm tests" {
		Te.Error("wrong title", P.Titles)
	}
	names := P.TypeNames()
	if len(names) != 6 || names[0] != "CX" || names[5] != "HW" {
		Te.Error("wrong atom types", names)
	}
	cx := P.AtomTypes["CX"]
	if cx.Index != 1 || cx.Mass != 12.010 || cx.AtomicNumber != 6 {
		Te.Error("wrong CX type", *cx)
	}
	if ep := P.AtomTypes["EP"]; ep.AtomicNumber != 0 {
		Te.Error("extra points should have no element", *ep)
	}
	if ow := P.AtomTypes["OW"]; ow.AtomicNumber != 8 {
		Te.Error("wrong element for OW", *ow)
	}
	b := P.BondTypes[BondKey{"CX", "N"}]
	if b == nil || b.K != 490.0 || b.Req != 1.335 {
		Te.Error("wrong CX-N bond")
	}
	if P.BondTypes[BondKey{"N", "CX"}] != b {
		Te.Error("both bond orientations should share one record")
	}
	a := P.AngleTypes[AngleKey{"N", "CX", "HX"}]
	if a == nil || a.K != 50.0 || a.ThetEq != 118.0 {
		Te.Error("wrong N-CX-HX angle")
	}
	if P.AngleTypes[AngleKey{"HX", "CX", "N"}] != a {
		Te.Error("both angle orientations should share one record")
	}
	key := TorsionKey{"CX", "N", "CX", "HX"}
	l := P.DihedralTypes[key]
	if l == nil {
		Te.Fatal("CX-N-CX-HX torsion missing")
	}
	if P.DihedralTypes[key.Reverse()] != l {
		Te.Error("both torsion orientations should share one list")
	}
	terms := *l
	if len(terms) != 3 {
		Te.Fatal("expected 3 torsion terms, got", len(terms))
	}
	if terms[0].PhiK != 0.80 || terms[0].Phase != 180.0 || terms[0].Per != 3.0 {
		Te.Error("wrong first torsion term", *terms[0])
	}
	if terms[1].PhiK != 0.08 || terms[1].Per != 2.0 {
		Te.Error("wrong second torsion term", *terms[1])
	}
	if terms[2].PhiK != 0.53 || terms[2].Phase != 0.0 || terms[2].Per != 1.0 {
		Te.Error("wrong third torsion term", *terms[2])
	}
	if terms[0].SCEE != 1.2 || terms[0].SCNB != 2.0 {
		Te.Error("wrong 1-4 scaling", terms[0].SCEE, terms[0].SCNB)
	}
	wild := *P.DihedralTypes[TorsionKey{"X", "CX", "N", "X"}]
	if len(wild) != 1 || wild[0].PhiK != 2.5 || wild[0].Per != 2.0 {
		Te.Error("wrong X-CX-N-X torsion, the barrier should be divided by 4")
	}
	if wild[0].SCEE != 1.2 || wild[0].SCNB != 2.0 {
		Te.Error("missing SCEE/SCNB should fall back to the defaults")
	}
	imp := P.ImproperTypes[ImproperKey("X", "X", "CX", "N")]
	if imp == nil || imp.PhiK != 1.1 || imp.Phase != 180.0 || imp.Per != 2.0 {
		Te.Error("wrong X-X-CX-N improper")
	}
	if P.ImproperTypes[ImproperKey("N", "X", "CX", "X")] != imp {
		Te.Error("improper lookup should not depend on flanking atom order")
	}
	if imp2 := P.ImproperTypes[ImproperKey("OW", "HX", "N", "CX")]; imp2 == nil || imp2.PhiK != 1.5 {
		Te.Error("wrong CX-HX-N-OW improper")
	}
	if !cx.LJSet || cx.Rmin != 1.9080 || cx.Epsilon != 0.0860 {
		Te.Error("wrong LJ parameters for CX", *cx)
	}
	if hx := P.AtomTypes["HX"]; hx.Rmin != 1.1000 || hx.Epsilon != 0.0157 {
		Te.Error("wrong LJ parameters for HX", *hx)
	}
	if len(P.NBFixKeys()) != 1 {
		Te.Fatal("expected exactly one pair override", P.NBFixKeys())
	}
	f := P.NBFixTypes[PairKey{"N", "OW"}]
	if !scalar.EqualWithinAbs(f.Eps, math.Sqrt(0.17*0.152), 1e-12) ||
		!scalar.EqualWithinAbs(f.Rmin, 1.824+1.7683, 1e-12) {
		Te.Error("wrong N-OW pair override", f)
	}
	fmt.Println("frcmod read!")
}

//TestParmDatRead reads the sample parm.dat, which exercises the fixed
//section order, the equivalence table and its LJEDIT propagation.
func TestParmDatRead(Te *testing.T) {
	P, err := FilesRead("test/parm.sample.dat")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Fatal(err)
	}
	names := P.TypeNames()
	if len(names) != 11 || names[0] != "CT" || names[10] != "M1" {
		Te.Error("wrong atom types", names)
	}
	if zn := P.AtomTypes["ZN"]; zn.AtomicNumber != 30 || zn.Index != 10 {
		Te.Error("wrong ZN type", *zn)
	}
	//M1 has a fake mass of 3.0, whose closest element is He
	if m1 := P.AtomTypes["M1"]; m1.AtomicNumber != 2 {
		Te.Error("wrong element guess for M1", *m1)
	}
	b := P.BondTypes[BondKey{"OW", "HW"}]
	if b == nil || b.Req != 0.9572 {
		Te.Error("wrong OW-HW bond")
	}
	d := *P.DihedralTypes[TorsionKey{"CT", "CT", "CT", "CT"}]
	if len(d) != 1 || !scalar.EqualWithinAbs(d[0].PhiK, 1.40/9.0, 1e-12) || d[0].Per != 3.0 {
		Te.Error("wrong CT-CT-CT-CT torsion", *d[0])
	}
	hnco := *P.DihedralTypes[TorsionKey{"H", "N", "C", "O"}]
	if len(hnco) != 2 {
		Te.Fatal("expected 2 terms for H-N-C-O, got", len(hnco))
	}
	if hnco[0].PhiK != 2.50 || hnco[0].Per != 2.0 || hnco[0].Phase != 180.0 {
		Te.Error("wrong first H-N-C-O term", *hnco[0])
	}
	if hnco[1].PhiK != 2.00 || hnco[1].Per != 1.0 {
		Te.Error("wrong second H-N-C-O term", *hnco[1])
	}
	if imp := P.ImproperTypes[ImproperKey("X", "X", "C", "O")]; imp == nil || imp.PhiK != 10.5 {
		Te.Error("wrong X-X-C-O improper")
	}
	if imp := P.ImproperTypes[ImproperKey("X", "N2", "C", "N3")]; imp == nil {
		Te.Error("X-N2-C-N3 improper missing")
	}
	//N2 and N3 carry no nonbond line of their own; the equivalence table
	//points them at N
	n := P.AtomTypes["N"]
	for _, typ := range []string{"N2", "N3"} {
		at := P.AtomTypes[typ]
		if !at.LJSet || at.Epsilon != n.Epsilon || at.Rmin != n.Rmin {
			Te.Error("LJ equivalencing failed for", typ)
		}
	}
	fixes := P.NBFixKeys()
	if len(fixes) != 4 {
		Te.Fatal("expected 4 pair overrides after propagation, got", fixes)
	}
	for _, pair := range []PairKey{{"N", "ZN"}, {"N2", "ZN"}, {"N3", "ZN"}, {"OW", "ZN"}} {
		if _, ok := P.NBFixTypes[pair]; !ok {
			Te.Error("missing pair override", pair)
		}
	}
	f := P.NBFixTypes[PairKey{"N2", "ZN"}]
	if !scalar.EqualWithinAbs(f.Eps, math.Sqrt(0.17*0.0125), 1e-12) {
		Te.Error("wrong propagated pair override", f)
	}
	if len(P.Warnings()) != 0 {
		Te.Error("unexpected warnings:", P.Warnings())
	}
	fmt.Println("parm.dat read!")
}

//TestFilesReadOverride checks that later files override earlier ones,
//key by key, the way several loadAmberParams commands would.
func TestFilesReadOverride(Te *testing.T) {
	P, err := FilesRead("test/parm.sample.dat", "test/frcmod.sample")
	if err != nil {
		Te.Fatal(err)
	}
	if len(P.Titles) != 2 {
		Te.Error("both titles should be kept", P.Titles)
	}
	if b := P.BondTypes[BondKey{"OW", "HW"}]; b.Req != 0.957 {
		Te.Error("the frcmod should override the OW-HW bond", *b)
	}
	if len(P.TypeNames()) != 14 {
		Te.Error("wrong type count after merge", P.TypeNames())
	}
	if cx := P.AtomTypes["CX"]; cx.Index != 12 {
		Te.Error("new types should get indices after the existing ones", *cx)
	}
	//a mass line for a known type must not clobber its element
	if n := P.AtomTypes["N"]; n.AtomicNumber != 7 {
		Te.Error("re-stated mass line changed the element of N")
	}
}

func TestTitleOnlyFile(Te *testing.T) {
	P := NewParameterSet()
	if err := fillString(P, "lonely title\n"); err != nil {
		Te.Error(err)
	}
	if len(P.Titles) != 1 || P.Titles[0] != "lonely title" {
		Te.Error("title not recorded", P.Titles)
	}
	if len(P.TypeNames()) != 0 {
		Te.Error("no types should have appeared")
	}
}

//TestKindLine checks the line that declares how the nonbonded section is
//given: anything but RE is refused.
func TestKindLine(Te *testing.T) {
	ac := "actest\nN  14.010\n\nC\n\n\n\n\n\n\nMOD4      AC\n"
	err := fillString(NewParameterSet(), ac)
	if _, ok := err.(*UnsupportedError); !ok {
		Te.Error("AC nonbonded parameters should be refused, got", err)
	}
	bad := "badkind\nN  14.010\n\nC\n\n\n\n\n\n\nMOD4\n"
	err = fillString(NewParameterSet(), bad)
	if _, ok := err.(*FormatError); !ok {
		Te.Error("unparseable kind line should be a format error, got", err)
	}
}

//TestEquivalenceMismatch gives an equivalenced type its own, different,
//LJ line. The type must keep its own parameters, with a warning, and be
//excluded from LJEDIT propagation.
func TestEquivalenceMismatch(Te *testing.T) {
	eq := `eqtest
N  14.010
N2 14.010
N3 14.010
ZN 65.400

C

` + "\n\n\n\n" + `N   N2  N3

MOD4      RE
  N           1.8240  0.1700
  N2          1.9000  0.2000
  N3          1.8240  0.1700
  ZN          1.2200  0.0125

LJEDIT
N   ZN  1.824 0.17 1.22 0.0125

END
`
	P := NewParameterSet()
	if err := fillString(P, eq); err != nil {
		Te.Fatal(err)
	}
	if len(P.Warnings()) != 1 || !strings.Contains(P.Warnings()[0], "N and N2 expected to be equal") {
		Te.Error("expected exactly one mismatch warning, got", P.Warnings())
	}
	if n2 := P.AtomTypes["N2"]; n2.Epsilon != 0.2000 || n2.Rmin != 1.9000 {
		Te.Error("N2 should have kept its own LJ parameters", *n2)
	}
	if n3 := P.AtomTypes["N3"]; n3.Epsilon != 0.1700 {
		Te.Error("N3 should still be equivalenced to N", *n3)
	}
	fixes := P.NBFixKeys()
	if len(fixes) != 2 {
		Te.Fatal("expected 2 pair overrides, got", fixes)
	}
	if _, ok := P.NBFixTypes[PairKey{"N2", "ZN"}]; ok {
		Te.Error("the mismatched type must not receive the pair override")
	}
	if _, ok := P.NBFixTypes[PairKey{"N3", "ZN"}]; !ok {
		Te.Error("N3 should have received the pair override")
	}
}

func TestTenTwelveRefused(Te *testing.T) {
	tt := "tentwelve\nHW 1.008\nOW 16.000\n\nC\n\n\n\n\n  HW  OW  125.0 130.0\n"
	err := fillString(NewParameterSet(), tt)
	if _, ok := err.(*UnsupportedError); !ok {
		Te.Error("nonzero 10-12 terms should be refused, got", err)
	}
	zeros := "tentwelve\nHW 1.008\nOW 16.000\n\nC\n\n\n\n\n  HW  OW  0000.     0000.\n\n\nMOD4      RE\n  HW          0.0000  0.0000\n  OW          1.7683  0.1520\n"
	if err := fillString(NewParameterSet(), zeros); err != nil {
		Te.Error("all-zero 10-12 terms should be accepted:", err)
	}
}

//TestDanglingTorsionTerm starts a multi-term torsion and then begins a
//different one without closing the first. The reader keeps going, with a
//warning.
func TestDanglingTorsionTerm(Te *testing.T) {
	d := `dwarn
DIHE
CT-CT-CT-CT   1    1.00        180.0            -2.0
HC-CT-CT-HC   1    1.00          0.0             1.0
`
	P := NewParameterSet()
	if err := fillString(P, d); err != nil {
		Te.Fatal(err)
	}
	if len(P.Warnings()) != 1 || !strings.Contains(P.Warnings()[0], "Expecting next term") {
		Te.Error("expected a dangling-term warning, got", P.Warnings())
	}
	if len(P.DihedralKeys()) != 2 {
		Te.Error("both torsions should be present", P.DihedralKeys())
	}
}

//TestCompressedRead peeks into and reads a gzipped frcmod.
func TestCompressedRead(Te *testing.T) {
	if !IsParamFile("test/frcmod.sample.gz") {
		Te.Error("compressed frcmod not recognized")
	}
	P, err := FilesRead("test/frcmod.sample.gz")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Fatal(err)
	}
	if len(P.TypeNames()) != 6 {
		Te.Error("wrong type count from the compressed file")
	}
	fmt.Println("gz read!")
}
