/*
 * sniff.go, part of goparm.
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
	"strconv"
	"strings"
)

//The section headers an frcmod file may use, with the abbreviations the
//legacy readers accept.
var frcmodHeaders = map[string]bool{
	"MASS": true,
	"BOND": true, "ANGLE": true, "ANGL": true,
	"DIHE": true, "DIHED": true, "DIHEDRAL": true,
	"IMPR": true, "IMPROP": true, "IMPROPER": true,
	"NONB": true, "NONBON": true, "NONBOND": true, "NONBONDED": true,
}

//IsParamFile reports whether the file looks like an Amber parameter
//file, frcmod or parm.dat. It never fails: files that can't be opened,
//or don't look like either format, just give false. Compressed files
//(.gz, .zst, .bz2) are peeked into transparently.
func IsParamFile(fname string) bool {
	f, err := zopen(fname)
	if err != nil {
		return false
	}
	defer f.Close()
	return isParamReader(newLineSource(bufio.NewReader(f)))
}

//isParamReader looks at the first couple of lines. The first line is
//always a free-form title. A blank second line (or a section header)
//marks an frcmod file; otherwise the second line has to pass for a
//parm.dat mass line.
func isParamReader(ls *lineSource) bool {
	ls.next() //title
	line := ls.next()
	if strings.TrimSpace(line) == "" {
		for line != "" && strings.TrimSpace(line) == "" {
			line = ls.next()
		}
		if line == "" {
			return false
		}
		if !frcmodHeaders[strings.TrimRight(line, " \t\r\n")] {
			return false
		}
	}
	if frcmodHeaders[strings.TrimRight(line, " \t\r\n")] {
		return true
	}
	//This should be a mass line: a type code of up to 2 characters,
	//a mass, and maybe a polarizability before the comment.
	words := strings.Fields(line)
	if len(words) < 2 {
		return false
	}
	if len(words[0]) > 2 {
		return false
	}
	if _, err := strconv.ParseFloat(words[0], 64); err == nil {
		return false
	}
	mass, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return false
	}
	haspol := false
	if len(words) > 2 {
		if _, err := strconv.ParseFloat(words[2], 64); err == nil {
			haspol = true
		}
	}
	if !haspol && !massMatchesType(words[0], mass) {
		return false
	}
	if len(words) > 3 {
		//anything past the polarizability is a comment, and comments
		//don't start with a number
		if _, err := strconv.ParseFloat(words[3], 64); err == nil {
			return false
		}
	}
	return true
}

//massMatchesType checks the declared mass against the standard mass of
//the element best guessed from a 1-2 character type code, to within
//1 amu. Two-letter codes might name a two-letter element (Br), or a
//one-letter element plus a role tag (CA is far more often a carbon than
//a calcium), so anything starting with C gets a carbon check before
//rejection, and unknown two-letter symbols fall back to the first
//letter.
func massMatchesType(code string, mass float64) bool {
	within := func(symb string) bool {
		em, ok := symbolMass[symb]
		return ok && math.Abs(em-mass) <= 1
	}
	if len(code) == 2 {
		c0, c1 := code[0], code[1]
		switch {
		case isAlpha(c0) && isAlpha(c1):
			key := strings.ToUpper(string(c0)) + strings.ToLower(string(c1))
			if _, known := symbolMass[key]; known {
				if within(key) {
					return true
				}
				if c0 == 'C' || c0 == 'c' {
					return within("C")
				}
				return false
			}
			return within(strings.ToUpper(string(c0)))
		case isAlpha(c0):
			return within(strings.ToUpper(string(c0)))
		default:
			return within(strings.ToUpper(string(c1)))
		}
	}
	return within(strings.ToUpper(string(code[0])))
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
