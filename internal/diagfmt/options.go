package diagfmt

// PathMode управляет тем, как печатаются пути файлов в диагностиках.
type PathMode uint8

const (
	// PathModeAuto оставляет короткие и относительные пути как есть,
	// длинные абсолютные сводит к имени файла.
	PathModeAuto PathMode = iota
	// PathModeAbsolute всегда печатает абсолютный путь.
	PathModeAbsolute
	// PathModeRelative всегда печатает путь относительно CWD.
	PathModeRelative
	// PathModeBasename печатает только имя файла.
	PathModeBasename
)

// PrettyOpts настраивает человекочитаемый вывод диагностик.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста вокруг основного span
	PathMode    PathMode
	Width       uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts настраивает JSON-вывод диагностик.
type JSONOpts struct {
	IncludePositions bool // добавить line/col к байтовым смещениям
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}
