/*
 * types.go, part of goparm.
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

//Keys for the parameter maps. Bonded terms are stored under both the
//forward and the reversed orientation, pair overrides under the
//lexically sorted pair.
type (
	BondKey    [2]string
	AngleKey   [3]string
	TorsionKey [4]string
	PairKey    [2]string
)

//Reverse returns the key read in the opposite atom order.
func (k TorsionKey) Reverse() TorsionKey {
	return TorsionKey{k[3], k[2], k[1], k[0]}
}

//AtomType is an Amber atom type: a short label (2 characters at most)
//with a mass, an element, and, once the nonbonded section has been read,
//Lennard-Jones parameters. Rmin is the per-type R* radius, in A, so the
//minimum of the combined potential for a pair sits at Rmin_i+Rmin_j.
//Epsilon is the well depth, in kcal/mol.
type AtomType struct {
	Name         string
	Index        int //1-based position in which the type was first seen
	Mass         float64
	AtomicNumber int
	Rmin         float64
	Epsilon      float64
	LJSet        bool
}

//SetLJ sets the Lennard-Jones well depth and R* radius for the type.
func (A *AtomType) SetLJ(epsilon, rmin float64) {
	A.Epsilon = epsilon
	A.Rmin = rmin
	A.LJSet = true
}

//BondType is a harmonic bond term. K in kcal/(mol A^2), Req in A.
type BondType struct {
	K   float64
	Req float64
}

//AngleType is a harmonic angle term. K in kcal/(mol rad^2), ThetEq in
//degrees.
type AngleType struct {
	K      float64
	ThetEq float64
}

//DihedralType is one Fourier term of a proper torsion. PhiK is the
//barrier height in kcal/mol, already divided by the multiplicity divisor
//of the file. Per is the (absolute) periodicity and Phase is in degrees.
//SCEE and SCNB are the 1-4 electrostatic and van der Waals scaling
//divisors for the torsion.
type DihedralType struct {
	PhiK  float64
	Per   float64
	Phase float64
	SCEE  float64
	SCNB  float64
}

//DihedralTypeList is the term sequence of one torsion. The forward and
//the reversed key of a torsion share a single list, so appending a term
//through either key is seen through both.
type DihedralTypeList []*DihedralType

//ImproperType is a periodic improper torsion term. Unlike proper
//torsions it is always a single term, with no divisor and no 1-4
//scaling.
type ImproperType struct {
	PhiK  float64
	Per   float64
	Phase float64
}

//NBFix is a pairwise override of the Lennard-Jones combination rule for
//one specific pair of atom types. Eps is the combined well depth
//sqrt(eps1*eps2) and Rmin the combined minimum distance rmin1+rmin2.
type NBFix struct {
	Eps  float64
	Rmin float64
}
