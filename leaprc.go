/*
 * leaprc.go, part of goparm.
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
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

//capture shapes for the handful of leaprc commands that carry
//force-field information. Filenames may be quoted, with either kind of
//quote, or bare.
const filenameRE = `(".+?"|'.+?'|[\S]*)`

var (
	loadParamsRE = regexp.MustCompile(`(?i)loadamberparams\s+` + filenameRE)
	loadOffRE    = regexp.MustCompile(`(?i)loadoff\s+` + filenameRE)
	loadMol2RE   = regexp.MustCompile(`(?i)(\S+)\s*=\s*loadmol[23]\s*` + filenameRE)
	atomTypeRE   = regexp.MustCompile(`\{\s*["']([\w\+\-]+)["']\s*["'](\w+)["']\s*["'](\w+)["']\s*\}`)
)

//LeapSession reads leaprc files the way tleap sources them, collecting
//force-field parameters into one ParameterSet. Only the commands that
//define force-field information are acted on: loadAmberParams, loadOff,
//loadMol2/loadMol3 and addAtomTypes. Everything else in the file is
//ignored. Several leaprc files can be read into the same session, with
//later files overriding earlier ones, just as several "source" commands
//in one tleap run would.
type LeapSession struct {
	amberHome   string
	searchOldFF bool
	loader      ResidueLoader
	//tleap loads certain heavyweight parameter files at most once per
	//run, no matter how many leaprc files ask for them.
	parmLoaded map[string]bool
	params     *ParameterSet
}

//NewLeapSession returns a session ready to read leaprc files.
func NewLeapSession() *LeapSession {
	L := new(LeapSession)
	L.SetDefaults()
	return L
}

//SetDefaults puts the session in its stock state: AMBERHOME is taken
//from the environment, old force-field directories are not searched,
//no residue loader is installed, and the parameter set is empty.
func (L *LeapSession) SetDefaults() {
	L.amberHome = os.Getenv("AMBERHOME")
	L.searchOldFF = false
	L.loader = nil
	L.parmLoaded = map[string]bool{"parm10.dat": false, "parm99.dat": false, "parm15": false}
	L.params = NewParameterSet()
}

//SetAmberHome overrides the Amber installation root used to locate the
//files that leaprc commands name.
func (L *LeapSession) SetAmberHome(path string) {
	L.amberHome = path
}

//SetSearchOldFF makes the session also look under dat/leap/lib/oldff,
//where retired force fields live.
func (L *LeapSession) SetSearchOldFF(b bool) {
	L.searchOldFF = b
}

//SetResidueLoader installs the reader used for the residue libraries
//(OFF and mol2 files) that leaprc commands load. Without one, those
//commands are skipped with a warning.
func (L *LeapSession) SetResidueLoader(r ResidueLoader) {
	L.loader = r
}

//Params returns the parameter set the session accumulates into. The
//same set is returned every time, growing as more files are read.
func (L *LeapSession) Params() *ParameterSet {
	return L.params
}

//Read opens the named leaprc file, without searching the Amber
//directories for it, and sources it.
func (L *LeapSession) Read(fname string) error {
	f, err := zopen(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	return L.Source(bufio.NewReader(f))
}

//Source reads a leaprc from r and runs its force-field directives.
//Comments start at '#' and run to the end of the physical line, and a
//trailing backslash continues a command on the next line.
func (L *LeapSession) Source(r StringReader) error {
	ls := newLineSource(r)
	var lines []string
	var composite []string
	for {
		raw := ls.next()
		if raw == "" {
			break
		}
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		if strings.HasSuffix(raw, "\\\n") {
			composite = append(composite, raw[:len(raw)-2])
			continue
		}
		composite = append(composite, raw)
		lines = append(lines, strings.Join(composite, ""))
		composite = composite[:0]
	}
	if len(composite) > 0 {
		lines = append(lines, strings.Join(composite, ""))
	}
	for _, line := range lines {
		//escaped spaces must survive tokenization inside the filename
		//regexes, so they get hidden behind a placeholder
		line = strings.ReplaceAll(line, `\ `, "_BSTOKEN_")
		if m := loadParamsRE.FindStringSubmatch(line); m != nil {
			fname := processFname(m[1])
			key := fname
			//any file named parm15-something counts as parm15
			if strings.HasPrefix(fname, "parm15") {
				key = "parm15"
			}
			if loaded, tracked := L.parmLoaded[key]; tracked {
				if loaded {
					L.params.warn("Skipping %s: already loaded", fname)
					continue
				}
				L.parmLoaded[key] = true
			}
			path, err := L.findFile(fname)
			if err != nil {
				return errDecorate(err, "LeapSession.Source")
			}
			if err := L.params.FillFile(path); err != nil {
				return err
			}
		} else if m := loadOffRE.FindStringSubmatch(line); m != nil {
			fname := processFname(m[1])
			path, err := L.findFile(fname)
			if err != nil {
				return errDecorate(err, "LeapSession.Source")
			}
			if L.loader == nil {
				L.params.warn("Skipping %s: no residue loader set", fname)
				continue
			}
			res, err := L.loader.LoadOFF(path)
			if err != nil {
				return err
			}
			for name, r := range res {
				L.params.Residues[name] = r
			}
		} else if m := loadMol2RE.FindStringSubmatch(line); m != nil {
			resname, fname := m[1], processFname(m[2])
			path, err := L.findFile(fname)
			if err != nil {
				return errDecorate(err, "LeapSession.Source")
			}
			if L.loader == nil {
				L.params.warn("Skipping %s: no residue loader set", fname)
				continue
			}
			residues, err := L.loader.LoadMol2(path)
			if err != nil {
				return err
			}
			switch len(residues) {
			case 0:
			case 1:
				//single residues go under the leap variable name
				L.params.Residues[resname] = residues[0]
			default:
				L.params.warn("Multi-residue mol2 files not supported by tleap. Loading anyway using names in mol2")
				for _, r := range residues {
					L.params.Residues[r.Name()] = r
				}
			}
		}
	}
	text := strings.Join(lines, "")
	atstr, err := atomTypesBlock(text)
	if err != nil {
		return errDecorate(err, "LeapSession.Source")
	}
	for _, m := range atomTypeRE.FindAllStringSubmatch(atstr, -1) {
		name, symb := m[1], m[2]
		z, ok := AtomicNumber(symb)
		if !ok {
			return errDecorate(formatErrorf("%s is not a recognized element", symb), "LeapSession.Source")
		}
		if at, ok := L.params.AtomTypes[name]; ok {
			at.AtomicNumber = z
		}
	}
	return nil
}

//processFname strips the quotes around a captured filename and turns
//escaped spaces back into plain ones.
func processFname(fname string) string {
	if len(fname) > 0 && (fname[0] == '"' || fname[0] == '\'') {
		fname = fname[1 : len(fname)-1]
	}
	fname = strings.ReplaceAll(fname, "_BSTOKEN_", `\ `)
	return strings.ReplaceAll(fname, `\ `, " ")
}

//atomTypesBlock extracts the contents of the first addAtomTypes block
//in text, braces balanced, newlines flattened to spaces. No block at
//all gives an empty string, which is not an error.
func atomTypesBlock(text string) (string, error) {
	idx := strings.Index(strings.ToLower(text), "addatomtypes")
	if idx < 0 {
		return "", nil
	}
	i := idx + len("addatomtypes")
	for i < len(text) && text[i] != '{' {
		switch text[i] {
		case '\r', '\n', '\t', ' ':
		default:
			return "", unsupportedErrorf("Unsupported addAtomTypes syntax in leaprc file")
		}
		i++
	}
	if i == len(text) {
		return "", unsupportedErrorf("Unsupported addAtomTypes syntax in leaprc file")
	}
	var chars []byte
	nopen := 1
	for i++; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			nopen++
		case '}':
			nopen--
			if nopen == 0 {
				return strings.TrimSpace(string(chars)), nil
			}
		case '\n':
			c = ' '
		}
		chars = append(chars, c)
	}
	return strings.TrimSpace(string(chars)), nil
}

//findFile looks for fname the way tleap does: in the working directory
//first, then under the Amber tree, in dat/leap/lib and dat/leap/parm,
//plus dat/leap/lib/oldff when old force fields are searched.
func (L *LeapSession) findFile(fname string) (string, error) {
	if len(fname) > 1 {
		first, last := fname[0], fname[len(fname)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			fname = fname[1 : len(fname)-1]
		}
	}
	leapdir := filepath.Join(L.amberHome, "dat", "leap")
	cwd, _ := os.Getwd()
	paths := []string{cwd, filepath.Join(leapdir, "lib"), filepath.Join(leapdir, "parm")}
	if L.searchOldFF {
		paths = append(paths, filepath.Join(leapdir, "lib", "oldff"))
	}
	for _, p := range paths {
		full := filepath.Join(p, fname)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", &NotFoundError{fname: fname, paths: paths}
}
