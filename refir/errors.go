package refir

import "github.com/coregx/csldisamb/disamberr"

func macroRecursionErr(name string) error {
	return &disamberr.StyleCompileError{Kind: disamberr.MacroRecursion, Path: "macro/" + name}
}

func unknownMacroErr(name string) error {
	return &disamberr.StyleCompileError{Kind: disamberr.UnknownMacro, Path: "macro/" + name}
}
