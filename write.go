/*
 * write.go, part of goparm.
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
	"io"
	"strconv"
	"strings"
)

//decimal formats v compactly but always with a decimal point or an
//exponent, the way SCEE/SCNB values appear in distributed files.
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

//WriteFrcmod writes the whole set to w in frcmod format. An empty title
//gets replaced by a small advertisement. Parameters appear in the order
//they were first added, with shared bond, angle and torsion records
//written once, under their first-seen orientation. Every atom type gets
//a NONB line, even if its LJ parameters were never set, in which case
//they come out as zeros.
func (P *ParameterSet) WriteFrcmod(w io.Writer, title string) error {
	return P.writeTo(w, title, false)
}

//WriteParmDat writes the whole set to w in the fixed-section parm.dat
//layout. The hydrophilic-types line, the 10-12 section and the
//equivalence table are left empty: every atom type carries its own LJ
//line, so no equivalencing is needed to read the result back.
func (P *ParameterSet) WriteParmDat(w io.Writer, title string) error {
	return P.writeTo(w, title, true)
}

//WriteFrcmodFile writes the set in frcmod format to the named file,
//compressing if the name calls for it.
func (P *ParameterSet) WriteFrcmodFile(name, title string) error {
	f, err := zcreate(name)
	if err != nil {
		return err
	}
	if err := P.WriteFrcmod(f, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

//WriteParmDatFile writes the set in parm.dat format to the named file,
//compressing if the name calls for it.
func (P *ParameterSet) WriteParmDatFile(name, title string) error {
	f, err := zcreate(name)
	if err != nil {
		return err
	}
	if err := P.WriteParmDat(f, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (P *ParameterSet) writeTo(w io.Writer, title string, parmStyle bool) error {
	if title == "" {
		title = "Created by goParm"
	}
	bw := bufio.NewWriter(w)
	header := func(h string) {
		if !parmStyle {
			bw.WriteString(h + "\n")
		}
	}
	fmt.Fprintf(bw, "%s\n", strings.TrimRight(title, "\r\n"))
	header("MASS")
	for _, name := range P.typeOrder {
		fmt.Fprintf(bw, "%-6s%6.3f\n", name, P.AtomTypes[name].Mass)
	}
	bw.WriteByte('\n')
	if parmStyle {
		bw.WriteByte('\n') //the hydrophilic-types line, which nothing uses
	}
	header("BOND")
	for _, k := range P.bondOrder {
		t := P.BondTypes[k]
		fmt.Fprintf(bw, "%-2s-%-2s   %8.3f  %6.3f\n", k[0], k[1], t.K, t.Req)
	}
	bw.WriteByte('\n')
	header("ANGLE")
	for _, k := range P.angleOrder {
		t := P.AngleTypes[k]
		fmt.Fprintf(bw, "%-2s-%-2s-%-2s   %8.3f  %6.3f\n", k[0], k[1], k[2], t.K, t.ThetEq)
	}
	bw.WriteByte('\n')
	header("DIHE")
	for _, k := range P.dihedralOrder {
		terms := *P.DihedralTypes[k]
		for i, t := range terms {
			//negative periodicity flags a term as continued on the next line
			cont := 1.0
			if i < len(terms)-1 {
				cont = -1.0
			}
			fmt.Fprintf(bw, "%-2s-%-2s-%-2s-%-2s %4d %14.8f %8.3f %5.1f    SCEE=%s SCNB=%s\n",
				k[0], k[1], k[2], k[3], 1, t.PhiK, t.Phase, cont*t.Per,
				decimal(t.SCEE), decimal(t.SCNB))
		}
	}
	bw.WriteByte('\n')
	header("IMPROPER")
	for _, k := range P.improperOrder {
		t := P.ImproperTypes[k]
		fmt.Fprintf(bw, "%-2s-%-2s-%-2s-%-2s %14.8f %8.3f %5.1f\n",
			k[0], k[1], k[2], k[3], t.PhiK, t.Phase, t.Per)
	}
	bw.WriteByte('\n')
	if parmStyle {
		bw.WriteByte('\n') //no 10-12 terms
		bw.WriteByte('\n') //no equivalences, as every type gets its own LJ line
		bw.WriteString("MOD4      RE\n")
	} else {
		bw.WriteString("NONB\n")
	}
	for _, name := range P.typeOrder {
		at := P.AtomTypes[name]
		fmt.Fprintf(bw, "%-2s  %12.8f %12.8f\n", name, at.Rmin, at.Epsilon)
	}
	bw.WriteByte('\n')
	if len(P.NBFixTypes) > 0 {
		bw.WriteString("LJEDIT\n")
		for _, k := range P.nbfixOrder {
			f := P.NBFixTypes[k]
			fmt.Fprintf(bw, "%-2s %-2s %12.8f %12.8f %12.8f %12.8f\n",
				k[0], k[1], f.Rmin/2, f.Eps, f.Rmin/2, f.Eps)
		}
	}
	if parmStyle {
		if len(P.NBFixTypes) > 0 {
			bw.WriteByte('\n')
		}
		bw.WriteString("END\n")
	}
	return bw.Flush()
}
