package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks files added from memory (tests, stdin, generated input).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks files whose UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks files whose \r\n line endings were rewritten to \n.
	FileNormalizedCRLF
	// FileNormalizedNFC marks files whose text changed under Unicode NFC normalization.
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
