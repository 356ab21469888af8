/*
 * errors.go, part of goparm.
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

import "fmt"

//errDecorate is a helper function that asserts that the error
//implements parm.Error and decorates it with the caller's name before
//returning it. If used with any other error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//FormatError means a line in a parameter file did not match the shape its
//section requires. It fullfills parm.Error.
type FormatError struct {
	message string
	deco    []string
}

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{message: fmt.Sprintf(format, args...)}
}

func (err *FormatError) Error() string { return err.message }

//Decorate adds new information to the error
func (err *FormatError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//ConversionError means a token that should be numeric could not be
//converted. It fullfills parm.Error.
type ConversionError struct {
	message string
	deco    []string
}

func conversionErrorf(format string, args ...interface{}) *ConversionError {
	return &ConversionError{message: fmt.Sprintf(format, args...)}
}

func (err *ConversionError) Error() string { return err.message }

//Decorate adds new information to the error
func (err *ConversionError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//NotFoundError means a file referenced by a leaprc could not be located
//in any of the search paths. It fullfills parm.Error.
type NotFoundError struct {
	fname string
	paths []string
	deco  []string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("Cannot find Amber file [%s] in paths %v", err.fname, err.paths)
}

//Decorate adds new information to the error
func (err *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the name of the file that could not be found.
func (err *NotFoundError) FileName() string { return err.fname }

//Paths returns the directories that were searched.
func (err *NotFoundError) Paths() []string { return err.paths }

//UnsupportedError means the file uses a feature this library recognizes
//but does not handle, such as nonzero 10-12 terms. It fullfills parm.Error.
type UnsupportedError struct {
	message string
	deco    []string
}

func unsupportedErrorf(format string, args ...interface{}) *UnsupportedError {
	return &UnsupportedError{message: fmt.Sprintf(format, args...)}
}

func (err *UnsupportedError) Error() string { return err.message }

//Decorate adds new information to the error
func (err *UnsupportedError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
