/*
 * atomicdata.go, part of goparm.
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

//The elements, ordered by atomic number. Index 0 is the "EP" extra point
//(virtual site), which Amber treats as an element-less particle.
var elementSymbol = []string{"EP",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr",
}

//A map for assigning mass to elements.
var symbolMass = map[string]float64{
	"EP": 0.0,
	"H":  1.008,
	"He": 4.003,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Ne": 20.18,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.95,
	"K":  39.10,
	"Ca": 40.08,
	"Sc": 44.96,
	"Ti": 47.87,
	"V":  50.94,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Ga": 69.72,
	"Ge": 72.63,
	"As": 74.92,
	"Se": 78.96,
	"Br": 79.904,
	"Kr": 83.80,
	"Rb": 85.47,
	"Sr": 87.62,
	"Y":  88.91,
	"Zr": 91.22,
	"Nb": 92.91,
	"Mo": 95.95,
	"Tc": 98.0,
	"Ru": 101.07,
	"Rh": 102.91,
	"Pd": 106.42,
	"Ag": 107.87,
	"Cd": 112.41,
	"In": 114.82,
	"Sn": 118.71,
	"Sb": 121.76,
	"Te": 127.60,
	"I":  126.90,
	"Xe": 131.29,
	"Cs": 132.91,
	"Ba": 137.33,
	"La": 138.91,
	"Ce": 140.12,
	"Pr": 140.91,
	"Nd": 144.24,
	"Pm": 145.0,
	"Sm": 150.36,
	"Eu": 151.96,
	"Gd": 157.25,
	"Tb": 158.93,
	"Dy": 162.50,
	"Ho": 164.93,
	"Er": 167.26,
	"Tm": 168.93,
	"Yb": 173.05,
	"Lu": 174.97,
	"Hf": 178.49,
	"Ta": 180.95,
	"W":  183.84,
	"Re": 186.21,
	"Os": 190.23,
	"Ir": 192.22,
	"Pt": 195.08,
	"Au": 196.97,
	"Hg": 200.59,
	"Tl": 204.38,
	"Pb": 207.2,
	"Bi": 208.98,
	"Po": 209.0,
	"At": 210.0,
	"Rn": 222.0,
	"Fr": 223.0,
	"Ra": 226.0,
	"Ac": 227.0,
	"Th": 232.04,
	"Pa": 231.04,
	"U":  238.03,
	"Np": 237.0,
	"Pu": 244.0,
	"Am": 243.0,
	"Cm": 247.0,
	"Bk": 247.0,
	"Cf": 251.0,
	"Es": 252.0,
	"Fm": 257.0,
	"Md": 258.0,
	"No": 259.0,
	"Lr": 262.0,
}

//A map for assigning atomic numbers to element symbols.
//Built from elementSymbol so both stay consistent.
var symbolZ = make(map[string]int, len(elementSymbol))

func init() {
	for i, v := range elementSymbol {
		symbolZ[v] = i
	}
}

//ElementByMass returns the symbol of the element whose standard mass is
//closest to m. Ties go to the element with the lowest atomic number.
func ElementByMass(m float64) string {
	best := "H"
	bestdiff := -1.0
	for _, symb := range elementSymbol[1:] {
		em, ok := symbolMass[symb]
		if !ok {
			continue
		}
		diff := em - m
		if diff < 0 {
			diff = -diff
		}
		if bestdiff < 0 || diff < bestdiff {
			best = symb
			bestdiff = diff
		}
	}
	return best
}

//ElementSymbol returns the symbol for the element with atomic number z,
//or an empty string if z is out of range. z=0 returns the "EP" extra
//point pseudo-element.
func ElementSymbol(z int) string {
	if z < 0 || z >= len(elementSymbol) {
		return ""
	}
	return elementSymbol[z]
}

//AtomicNumber returns the atomic number for an element symbol, and whether
//the symbol is a recognized element.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := symbolZ[symbol]
	return z, ok
}
