/*
 * interfaces.go, part of goparm.
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

// StringReader is implemented by bufio.Reader and anything else that can
// hand out text line by line.
type StringReader interface {
	ReadString(delim byte) (string, error)
}

// Residue is a residue template obtained from a leap library file. goParm
// does not parse OFF or mol2 libraries itself; it only files the templates
// a ResidueLoader hands back, under their names.
type Residue interface {
	Name() string
}

// ResidueLoader reads leap residue libraries. Implementations are expected
// to parse Amber OFF files and (possibly multi-residue) mol2/mol3 files.
type ResidueLoader interface {

	//LoadOFF parses an OFF library file and returns its templates keyed
	//by residue name.
	LoadOFF(fname string) (map[string]Residue, error)

	//LoadMol2 parses a mol2 or mol3 file and returns the residues it
	//contains, in file order.
	LoadMol2(fname string) ([]Residue, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when the error is passed up. Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}
