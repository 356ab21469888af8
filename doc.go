/*
 * doc.go, part of goparm.
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

/*Package parm reads, stores and writes Amber force-field parameters. It provides
the parameter database structure, readers for the file formats in which the Amber
force fields are distributed, and writers to produce such files from a database.



	**goParm Capabilities**


    Reads parm.dat parameter files, including the LJ equivalence table, the
	nonbonded-kind marker and the trailing LJEDIT section.

    Reads frcmod parameter modification files, with their header-labeled
	sections.

    Tells the two formats apart on its own, so files can be loaded without
	knowing which kind they are, and sniffs whether an arbitrary file is an
	Amber parameter file at all.

    Reads any number of files into one database, with later files overriding
	earlier ones term by term, the way tleap accumulates a force field.

    Sources leaprc files, following their loadAmberParams, loadOff,
	loadMol2/loadMol3 and addAtomTypes commands and searching the Amber
	directory tree for the files they name.

    Handles multi-term torsions, shared between both orientations of their
	atom types, and wildcard impropers.

    Writes the database back as an frcmod or a parm.dat file that reads back
	into an equal database.

    Opens and creates files transparently compressed as gzip, zstd or bzip2
	(the latter for reading only), decided by filename suffix.



The lj1264 subpackage generates the C4 coefficients of the 12-6-4
Lennard-Jones potential for metal ions, and the parmplot subpackage draws
torsion energy profiles (uses the gonum plot library).

Atom types are the currency of the whole library: every parameter is keyed by
the Amber atom-type strings of the atoms it applies to, exactly as they appear
in the files.*/
package parm
