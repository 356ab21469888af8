/*
 * parmset.go, part of goparm.
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
	"fmt"
	"log"
	"sort"
)

//ParameterSet is an Amber force-field parameter database, normally built
//by reading one or more parm.dat/frcmod files, or a leaprc. Bonded terms
//can be looked up under either atom orientation; both keys resolve to
//the same record, so a change made through one key is seen through the
//other. Reading several files into one set follows Amber semantics:
//later files override earlier ones, key by key.
//A ParameterSet is not safe for concurrent mutation.
type ParameterSet struct {
	AtomTypes     map[string]*AtomType
	BondTypes     map[BondKey]*BondType
	AngleTypes    map[AngleKey]*AngleType
	DihedralTypes map[TorsionKey]*DihedralTypeList
	ImproperTypes map[TorsionKey]*ImproperType
	NBFixTypes    map[PairKey]NBFix
	Residues      map[string]Residue
	//Titles collects the first line of every file read into the set.
	Titles []string
	//Fallback 1-4 scaling divisors for torsion lines that carry no
	//SCEE/SCNB annotation.
	DefaultSCEE float64
	DefaultSCNB float64

	//Go maps don't keep insertion order, but the legacy files are
	//order-sensitive: atom-type indices come from the order in which
	//masses appear, and written files should list terms the way they
	//were read. So first-seen order is tracked separately.
	typeOrder     []string
	bondOrder     []BondKey
	angleOrder    []AngleKey
	dihedralOrder []TorsionKey
	improperOrder []TorsionKey
	nbfixOrder    []PairKey

	warnings []string
}

//NewParameterSet returns an empty, usable parameter database.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{
		AtomTypes:     make(map[string]*AtomType),
		BondTypes:     make(map[BondKey]*BondType),
		AngleTypes:    make(map[AngleKey]*AngleType),
		DihedralTypes: make(map[TorsionKey]*DihedralTypeList),
		ImproperTypes: make(map[TorsionKey]*ImproperType),
		NBFixTypes:    make(map[PairKey]NBFix),
		Residues:      make(map[string]Residue),
		DefaultSCEE:   1.2,
		DefaultSCNB:   2.0,
	}
}

//AddAtomType registers an atom type under name. If the name is already
//known, only its mass is updated (the atomic number is kept, as Amber
//mass lines in later files routinely re-state types). New types get the
//next 1-based index. The stored record is returned.
func (P *ParameterSet) AddAtomType(name string, mass float64, atomicNumber int) *AtomType {
	if at, ok := P.AtomTypes[name]; ok {
		at.Mass = mass
		return at
	}
	at := &AtomType{Name: name, Index: len(P.AtomTypes) + 1, Mass: mass, AtomicNumber: atomicNumber}
	P.AtomTypes[name] = at
	P.typeOrder = append(P.typeOrder, name)
	return at
}

//AddBondType stores t under (a1,a2) and (a2,a1), both pointing to the
//same record. An existing entry is replaced, keeping its original
//position.
func (P *ParameterSet) AddBondType(a1, a2 string, t *BondType) {
	k := BondKey{a1, a2}
	rk := BondKey{a2, a1}
	if _, ok := P.BondTypes[k]; !ok {
		P.bondOrder = append(P.bondOrder, k)
	}
	P.BondTypes[k] = t
	P.BondTypes[rk] = t
}

//AddAngleType stores t under (a1,a2,a3) and (a3,a2,a1), both pointing to
//the same record.
func (P *ParameterSet) AddAngleType(a1, a2, a3 string, t *AngleType) {
	k := AngleKey{a1, a2, a3}
	rk := AngleKey{a3, a2, a1}
	if _, ok := P.AngleTypes[k]; !ok {
		P.angleOrder = append(P.angleOrder, k)
	}
	P.AngleTypes[k] = t
	P.AngleTypes[rk] = t
}

//AddDihedralList starts a fresh term sequence for key (and its reverse),
//replacing whatever was there. Both orientations share the returned
//list, so terms appended to it are visible under both keys.
func (P *ParameterSet) AddDihedralList(key TorsionKey, first *DihedralType) *DihedralTypeList {
	rk := key.Reverse()
	if _, ok := P.DihedralTypes[key]; !ok {
		P.dihedralOrder = append(P.dihedralOrder, key)
	}
	l := &DihedralTypeList{first}
	P.DihedralTypes[key] = l
	P.DihedralTypes[rk] = l
	return l
}

//AddImproperType stores t under the canonical key for (a1,a2,a3,a4).
//Atom 3 is the central atom; see ImproperKey.
func (P *ParameterSet) AddImproperType(a1, a2, a3, a4 string, t *ImproperType) {
	k := ImproperKey(a1, a2, a3, a4)
	if _, ok := P.ImproperTypes[k]; !ok {
		P.improperOrder = append(P.improperOrder, k)
	}
	P.ImproperTypes[k] = t
}

//ImproperKey builds the canonical lookup key for an improper torsion.
//Amber parameter files always place the central atom third; the other
//three are order-insensitive, so they are sorted, with the wildcard "X"
//forced to the front the way the legacy files print generic impropers.
func ImproperKey(a1, a2, a3, a4 string) TorsionKey {
	f := []string{a1, a2, a4}
	sort.Slice(f, func(i, j int) bool {
		if (f[i] == "X") != (f[j] == "X") {
			return f[i] == "X"
		}
		return f[i] < f[j]
	})
	return TorsionKey{f[0], f[1], a3, f[2]}
}

//AddNBFix stores the pair override under the lexically sorted pair.
func (P *ParameterSet) AddNBFix(a1, a2 string, f NBFix) {
	k := PairKey{a1, a2}
	if a2 < a1 {
		k = PairKey{a2, a1}
	}
	if _, ok := P.NBFixTypes[k]; !ok {
		P.nbfixOrder = append(P.nbfixOrder, k)
	}
	P.NBFixTypes[k] = f
}

//TypeNames returns the atom type names in the order their masses were
//first read.
func (P *ParameterSet) TypeNames() []string { return P.typeOrder }

//BondKeys returns one key per distinct bond record, in first-seen order
//and orientation.
func (P *ParameterSet) BondKeys() []BondKey { return P.bondOrder }

//AngleKeys returns one key per distinct angle record, in first-seen
//order and orientation.
func (P *ParameterSet) AngleKeys() []AngleKey { return P.angleOrder }

//DihedralKeys returns one key per distinct torsion sequence, in
//first-seen order and orientation.
func (P *ParameterSet) DihedralKeys() []TorsionKey { return P.dihedralOrder }

//ImproperKeys returns the canonical improper keys in first-seen order.
func (P *ParameterSet) ImproperKeys() []TorsionKey { return P.improperOrder }

//NBFixKeys returns the sorted pair keys in first-seen order.
func (P *ParameterSet) NBFixKeys() []PairKey { return P.nbfixOrder }

//Warnings returns the non-fatal complaints collected while reading
//files into the set, oldest first.
func (P *ParameterSet) Warnings() []string { return P.warnings }

//warn records a non-fatal problem and echoes it to the log.
func (P *ParameterSet) warn(format string, args ...interface{}) {
	m := fmt.Sprintf(format, args...)
	P.warnings = append(P.warnings, m)
	log.Printf("Warning: %s", m)
}
