// Package profile defines the caller's technical context used to
// personalize diagnosis solutions.
package profile

import "strings"

// OS identifies the caller's operating system.
type OS string

const (
	OSLinux   OS = "linux"
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSUnknown OS = "unknown"
)

// PackageManager identifies the caller's package manager.
type PackageManager string

const (
	PMPip     PackageManager = "pip"
	PMConda   PackageManager = "conda"
	PMPoetry  PackageManager = "poetry"
	PMUnknown PackageManager = "unknown"
)

// Editor identifies the caller's code editor.
type Editor string

const (
	EditorVSCode  Editor = "vscode"
	EditorPyCharm Editor = "pycharm"
	EditorSublime Editor = "sublime"
	EditorVim     Editor = "vim"
	EditorJupyter Editor = "jupyter"
	EditorUnknown Editor = "unknown"
)

// Profile is the caller's declared technical context. It is an immutable
// value: the engine reads it but never modifies it. Configured marks
// whether the caller explicitly set it up (vs. defaulted).
type Profile struct {
	OS             OS
	PackageManager PackageManager
	Editor         Editor
	Configured     bool
}

// Default returns the profile assumed for callers who never configured one.
func Default() Profile {
	return Profile{
		OS:             OSLinux,
		PackageManager: PMPip,
		Editor:         EditorVSCode,
		Configured:     false,
	}
}

// With returns a copy of p with the non-empty tags replaced (each parsed
// through alias normalization) and Configured set.
func (p Profile) With(os, pm, editor string) Profile {
	next := p
	if os != "" {
		next.OS = ParseOS(os)
	}
	if pm != "" {
		next.PackageManager = ParsePackageManager(pm)
	}
	if editor != "" {
		next.Editor = ParseEditor(editor)
	}
	next.Configured = true
	return next
}

// ParseOS normalizes a spoken or typed OS name to its canonical tag.
func ParseOS(s string) OS {
	switch normalize(s) {
	case "linux", "ubuntu", "debian":
		return OSLinux
	case "windows", "win":
		return OSWindows
	case "macos", "mac", "osx", "darwin":
		return OSMacOS
	default:
		return OSUnknown
	}
}

// ParsePackageManager normalizes a package manager name to its canonical tag.
func ParsePackageManager(s string) PackageManager {
	switch normalize(s) {
	case "pip", "pip3":
		return PMPip
	case "conda", "anaconda", "miniconda":
		return PMConda
	case "poetry":
		return PMPoetry
	default:
		return PMUnknown
	}
}

// ParseEditor normalizes an editor name to its canonical tag.
func ParseEditor(s string) Editor {
	switch normalize(s) {
	case "vscode", "code", "visual studio code":
		return EditorVSCode
	case "pycharm", "charm":
		return EditorPyCharm
	case "sublime", "sublime text":
		return EditorSublime
	case "vim", "vi", "neovim":
		return EditorVim
	case "jupyter", "notebook", "jupyterlab":
		return EditorJupyter
	default:
		return EditorUnknown
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
