/*
 * read.go, part of goparm.
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
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

//Tolerance for deciding that two LJ parameters which should be
//equivalenced to the same value actually are.
const tiny = 1e-8

//The section line shapes. Atom type fields are 1 or 2 characters wide,
//separated by dashes, and may include padding spaces, so they are
//matched with (..?) and trimmed afterwards.
const floatRE = `([+-]?(?:\d+(?:\.\d*)?|\.\d+))`

var (
	bondRE   = regexp.MustCompile(`^(..?)-(..?)\s+` + floatRE + `\s+` + floatRE)
	angleRE  = regexp.MustCompile(`^(..?)-(..?)-(..?)\s+` + floatRE + `\s+` + floatRE)
	dihedRE  = regexp.MustCompile(`^(..?)-(..?)-(..?)-(..?)\s+` + floatRE + `\s+` + floatRE + `\s+` + floatRE + `\s+` + floatRE)
	dihed2RE = regexp.MustCompile(`^\s*` + floatRE + `\s+` + floatRE + `\s+` + floatRE + `\s+` + floatRE)
	sceeRE   = regexp.MustCompile(`SCEE=\s*` + floatRE)
	scnbRE   = regexp.MustCompile(`SCNB=\s*` + floatRE)
	improRE  = regexp.MustCompile(`^(..?)-(..?)-(..?)-(..?)\s+` + floatRE + `\s+` + floatRE + `\s+` + floatRE)
)

//refloat converts a regexp capture that is already known to have float
//shape.
func refloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

//lineSource hands out lines one at a time and, once the underlying
//reader runs dry, empty strings forever. That makes the blank-line
//terminated sections of parm.dat files drain uniformly at EOF.
type lineSource struct {
	r    StringReader
	done bool
}

func newLineSource(r StringReader) *lineSource {
	return &lineSource{r: r}
}

func (l *lineSource) next() string {
	if l.done {
		return ""
	}
	s, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
	}
	return s
}

//section feeds handler every line until a blank line or EOF ends the
//section.
func (l *lineSource) section(handler func(string) error) error {
	for {
		raw := l.next()
		if raw == "" {
			return nil
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			return nil
		}
		if err := handler(line); err != nil {
			return err
		}
	}
}

//Fill reads one Amber parameter file, frcmod or parm.dat, from r into
//the set. The file's title line is appended to Titles. Which of the two
//layouts the file uses is decided by the line after the title: blank or
//a section header means frcmod, anything else is taken for the first
//mass line of a parm.dat.
func (P *ParameterSet) Fill(r StringReader) error {
	ls := newLineSource(r)
	title := ls.next()
	P.Titles = append(P.Titles, strings.TrimSpace(title))
	raw := ls.next()
	if raw == "" {
		return nil //a title and nothing else
	}
	if strings.TrimSpace(raw) == "" || frcmodHeaders[strings.TrimSpace(raw)] {
		return P.parseFrcmod(raw, ls)
	}
	return P.parseParmDat(raw, ls)
}

//FillFile opens name, transparently decompressing if needed, and reads
//it into the set.
func (P *ParameterSet) FillFile(name string) error {
	f, err := zopen(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := P.Fill(bufio.NewReader(f)); err != nil {
		return errDecorate(err, "FillFile "+name)
	}
	return nil
}

//FilesRead builds a parameter database from the given files, read in
//order. Order matters: later files override earlier ones, key by key.
func FilesRead(names ...string) (*ParameterSet, error) {
	P := NewParameterSet()
	for _, name := range names {
		if err := P.FillFile(name); err != nil {
			return nil, err
		}
	}
	return P, nil
}

//dihedralState tracks multi-term torsions while one file is read. A
//negative periodicity on a term leaves its key "open", meaning the next
//term continues the same sequence; open keys reaching the end of the
//file just stay open, as the legacy reader never complains about that.
type dihedralState struct {
	open map[TorsionKey]bool
	last *TorsionKey
}

func newDihedralState() *dihedralState {
	return &dihedralState{open: make(map[TorsionKey]bool)}
}

func (P *ParameterSet) parseFrcmod(first string, ls *lineSource) error {
	section := ""
	st := newDihedralState()
	for raw := first; raw != ""; raw = ls.next() {
		line := strings.TrimRight(raw, " \t\r\n")
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "MASS"):
			section = "MASS"
			continue
		case strings.HasPrefix(line, "BOND"):
			section = "BOND"
			continue
		case strings.HasPrefix(line, "ANGL"):
			section = "ANGLE"
			continue
		case strings.HasPrefix(line, "DIHE"):
			section = "DIHEDRAL"
			continue
		case strings.HasPrefix(line, "IMPR"):
			section = "IMPROPER"
			continue
		case strings.HasPrefix(line, "NONB"):
			section = "NONBOND"
			continue
		case strings.HasPrefix(line, "LJEDIT"):
			section = "NBFIX"
			continue
		}
		var err error
		switch section {
		case "MASS":
			err = P.processMassLine(line)
		case "BOND":
			err = P.processBondLine(line)
		case "ANGLE":
			err = P.processAngleLine(line)
		case "DIHEDRAL":
			err = P.processDihedralLine(line, st)
		case "IMPROPER":
			err = P.processImproperLine(line)
		case "NONBOND":
			err = P.processNonbondLine(line)
		case "NBFIX":
			//frcmod files carry no equivalence table, so no propagation
			err = P.processNBFixLine(line, nil)
		}
		if err != nil {
			return errDecorate(err, "parseFrcmod")
		}
	}
	return nil
}

func (P *ParameterSet) parseParmDat(first string, ls *lineSource) error {
	caller := "parseParmDat"
	if err := P.processMassLine(strings.TrimSpace(first)); err != nil {
		return errDecorate(err, caller)
	}
	if err := ls.section(P.processMassLine); err != nil {
		return errDecorate(err, caller)
	}
	ls.next() //the list of hydrophilic atom types, which nothing uses
	if err := ls.section(P.processBondLine); err != nil {
		return errDecorate(err, caller)
	}
	if err := ls.section(P.processAngleLine); err != nil {
		return errDecorate(err, caller)
	}
	st := newDihedralState()
	err := ls.section(func(l string) error { return P.processDihedralLine(l, st) })
	if err != nil {
		return errDecorate(err, caller)
	}
	if err := ls.section(P.processImproperLine); err != nil {
		return errDecorate(err, caller)
	}
	if err := ls.section(P.process1012Line); err != nil {
		return errDecorate(err, caller)
	}
	//LJ equivalencing: the first type of each line donates its nonbonded
	//parameters to the rest.
	eqCanon := make(map[string]string)
	eqList := make(map[string][]string)
	var eqOrder []string
	err = ls.section(func(l string) error {
		words := strings.Fields(l)
		for _, typ := range words[1:] {
			if _, seen := eqCanon[typ]; !seen {
				eqOrder = append(eqOrder, typ)
			}
			eqCanon[typ] = words[0]
			eqList[words[0]] = append(eqList[words[0]], typ)
		}
		return nil
	})
	if err != nil {
		return errDecorate(err, caller)
	}
	words := strings.Fields(ls.next())
	if len(words) < 2 {
		return errDecorate(formatErrorf("Could not parse the kind of nonbonded parameters in Amber parameter file"), caller)
	}
	if strings.ToUpper(words[1]) != "RE" {
		return errDecorate(unsupportedErrorf("Only RE nonbonded parameters supported"), caller)
	}
	if err := ls.section(P.processNonbondLine); err != nil {
		return errDecorate(err, caller)
	}
	//Assign the equivalenced types. A type that already got its own,
	//different LJ parameters is left alone, with a warning, and dropped
	//from the equivalence list so LJEDIT won't propagate to it either.
	for _, atyp := range eqOrder {
		canon := eqCanon[atyp]
		otyp, ok := P.AtomTypes[canon]
		if !ok {
			return errDecorate(formatErrorf("Atom type %s not present in the database.", canon), caller)
		}
		at, ok := P.AtomTypes[atyp]
		if !ok {
			continue
		}
		if at.LJSet {
			if !scalar.EqualWithinAbs(otyp.Epsilon, at.Epsilon, tiny) ||
				!scalar.EqualWithinAbs(otyp.Rmin, at.Rmin, tiny) {
				P.warn("%s and %s expected to be equal but are not", otyp.Name, atyp)
				eqList[canon] = removeString(eqList[canon], atyp)
				continue
			}
		}
		at.SetLJ(otyp.Epsilon, otyp.Rmin)
	}
	if strings.TrimSpace(ls.next()) == "LJEDIT" {
		err := ls.section(func(l string) error { return P.processNBFixLine(l, eqList) })
		if err != nil {
			return errDecorate(err, caller)
		}
	}
	return nil
}

func (P *ParameterSet) processMassLine(line string) error {
	words := strings.Fields(line)
	if len(words) < 2 {
		return formatErrorf("Error parsing MASS line. Not enough tokens")
	}
	mass, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return conversionErrorf("Could not convert mass to float [%s]", words[1])
	}
	name := words[0]
	if name == "EP" || name == "LP" {
		//extra points and lone pairs are element-less
		P.AddAtomType(name, mass, 0)
		return nil
	}
	z, _ := AtomicNumber(ElementByMass(mass))
	P.AddAtomType(name, mass, z)
	return nil
}

func (P *ParameterSet) processBondLine(line string) error {
	m := bondRE.FindStringSubmatch(line)
	if m == nil {
		return formatErrorf("Could not understand BOND line [%s]", line)
	}
	a1 := strings.TrimSpace(m[1])
	a2 := strings.TrimSpace(m[2])
	P.AddBondType(a1, a2, &BondType{K: refloat(m[3]), Req: refloat(m[4])})
	return nil
}

func (P *ParameterSet) processAngleLine(line string) error {
	m := angleRE.FindStringSubmatch(line)
	if m == nil {
		return formatErrorf("Could not understand ANGLE line [%s]", line)
	}
	a1 := strings.TrimSpace(m[1])
	a2 := strings.TrimSpace(m[2])
	a3 := strings.TrimSpace(m[3])
	P.AddAngleType(a1, a2, a3, &AngleType{K: refloat(m[4]), ThetEq: refloat(m[5])})
	return nil
}

//processDihedralLine handles one torsion term. The atom types may be
//missing: a term whose predecessor had negative periodicity belongs to
//the predecessor's key. Atom types seem to only be required for the
//first term of a multi-term torsion.
func (P *ParameterSet) processDihedralLine(line string, st *dihedralState) error {
	var key TorsionKey
	var div, k, phi, per string
	m := dihedRE.FindStringSubmatch(line)
	switch {
	case m == nil && st.last == nil:
		return formatErrorf("Could not understand DIHEDRAL line [%s]", line)
	case m == nil:
		m2 := dihed2RE.FindStringSubmatch(line)
		if m2 == nil {
			return formatErrorf("Could not understand DIHEDRAL line [%s]", line)
		}
		div, k, phi, per = m2[1], m2[2], m2[3], m2[4]
		key = *st.last
		if !st.open[key] {
			panic("Cannot have an implied torsion that has already finished!")
		}
	default:
		key = TorsionKey{
			strings.TrimSpace(m[1]), strings.TrimSpace(m[2]),
			strings.TrimSpace(m[3]), strings.TrimSpace(m[4]),
		}
		div, k, phi, per = m[5], m[6], m[7], m[8]
		if st.last != nil && key != *st.last && key.Reverse() != *st.last {
			P.warn("Expecting next term in dihedral %v, got dihedral %v", *st.last, key)
		}
	}
	scee := P.DefaultSCEE
	if sm := sceeRE.FindStringSubmatch(line); sm != nil {
		scee = refloat(sm[1])
	}
	scnb := P.DefaultSCNB
	if sm := scnbRE.FindStringSubmatch(line); sm != nil {
		scnb = refloat(sm[1])
	}
	perf := refloat(per)
	typ := &DihedralType{
		PhiK:  refloat(k) / refloat(div),
		Per:   math.Abs(perf),
		Phase: refloat(phi),
		SCEE:  scee,
		SCNB:  scnb,
	}
	if !st.open[key] {
		//a finished (or never seen) torsion: a new sequence replaces it
		P.AddDihedralList(key, typ)
	} else {
		l := P.DihedralTypes[key]
		*l = append(*l, typ)
	}
	st.open[key] = perf < 0
	st.open[key.Reverse()] = perf < 0
	if perf < 0 {
		carried := key
		st.last = &carried
	} else {
		st.last = nil
	}
	return nil
}

func (P *ParameterSet) processImproperLine(line string) error {
	m := improRE.FindStringSubmatch(line)
	if m == nil {
		return formatErrorf("Could not understand IMPROPER line [%s]", line)
	}
	//atom 3 is the central atom, always, in Amber parameter files
	P.AddImproperType(
		strings.TrimSpace(m[1]), strings.TrimSpace(m[2]),
		strings.TrimSpace(m[3]), strings.TrimSpace(m[4]),
		&ImproperType{PhiK: refloat(m[5]), Phase: refloat(m[6]), Per: refloat(m[7])})
	return nil
}

func (P *ParameterSet) processNonbondLine(line string) error {
	words := strings.Fields(line)
	if len(words) < 3 {
		return formatErrorf("Could not understand nonbond parameter line [%s]", line)
	}
	at, ok := P.AtomTypes[words[0]]
	if !ok {
		return formatErrorf("Atom type %s not present in the database.", words[0])
	}
	rmin, err1 := strconv.ParseFloat(words[1], 64)
	eps, err2 := strconv.ParseFloat(words[2], 64)
	if err1 != nil || err2 != nil {
		return conversionErrorf("Could not convert nonbond parameters to floats [%s, %s]", words[1], words[2])
	}
	at.SetLJ(eps, rmin)
	return nil
}

func (P *ParameterSet) process1012Line(line string) error {
	words := strings.Fields(line)
	if len(words) < 4 {
		return formatErrorf("Trouble parsing 10-12 terms")
	}
	acoef, err1 := strconv.ParseFloat(words[2], 64)
	bcoef, err2 := strconv.ParseFloat(words[3], 64)
	if err1 != nil || err2 != nil {
		return conversionErrorf("Trouble parsing 10-12 terms")
	}
	if acoef != 0 || bcoef != 0 {
		return unsupportedErrorf("10-12 potentials are not supported")
	}
	return nil
}

//processNBFixLine stores a pair override and, when an equivalence table
//is in effect, propagates it to the types equivalenced to either member,
//including the cross product of both lists.
func (P *ParameterSet) processNBFixLine(line string, equivalents map[string][]string) error {
	words := strings.Fields(line)
	if len(words) < 6 {
		return formatErrorf("Could not understand LJEDIT line [%s]", line)
	}
	rmin1, err1 := strconv.ParseFloat(words[2], 64)
	eps1, err2 := strconv.ParseFloat(words[3], 64)
	rmin2, err3 := strconv.ParseFloat(words[4], 64)
	eps2, err4 := strconv.ParseFloat(words[5], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return conversionErrorf("Could not convert LJEDIT parameters to floats.")
	}
	a1, a2 := words[0], words[1]
	fix := NBFix{Eps: math.Sqrt(eps1 * eps2), Rmin: rmin1 + rmin2}
	P.AddNBFix(a1, a2, fix)
	if equivalents == nil {
		return nil
	}
	for _, o1 := range equivalents[a1] {
		P.AddNBFix(o1, a2, fix)
	}
	for _, o2 := range equivalents[a2] {
		P.AddNBFix(a1, o2, fix)
	}
	for _, o1 := range equivalents[a1] {
		for _, o2 := range equivalents[a2] {
			P.AddNBFix(o1, o2, fix)
		}
	}
	return nil
}

func removeString(s []string, x string) []string {
	for i, v := range s {
		if v == x {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
