package config

// SourceFileExt is the canonical source file extension.
const SourceFileExt = ".cx"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".cx", ".calyx"}
