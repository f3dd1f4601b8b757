package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHasBOM indicates the content starts with a UTF-8 byte order mark.
	// The BOM is kept in Content; lexing starts after it.
	FileHasBOM
	// FileHasCRLF indicates the content contains at least one \r\n terminator.
	// Terminators are kept as-is: emitted output must reproduce them byte-for-byte.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is the exact byte sequence of the input: no newline normalization,
// no BOM stripping. Every consumer that re-emits source relies on that.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n' в Content
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
