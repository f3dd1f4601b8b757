package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addBaselineSeeds(f)
	for _, c := range goldenManifestCases() {
		if len(c.Input) > 0 {
			f.Add(clampSeed([]byte(c.Input)))
		}
	}
}

// addBaselineSeeds добавляет минимальный срез синтаксиса, который обязан
// переживать любой рефакторинг лексера и парсера.
func addBaselineSeeds(f *testing.F) {
	seeds := []string{
		"",
		"x = 1\n",
		"msg = '%s' % name\n",
		"pair = '%s=%r' % (key, value)\n",
		"pct = '%d%%' % load\n",
		"def greet(name, *args, sep=', ', **kw):\n    return '%s!' % name\n",
		"class Point:\n    def __init__(self, x, y):\n        self.x = x\n        self.y = y\n",
		"values = [i ** 2 for i in range(10) if i % 2]\n",
		"table = {k: v for k, v in pairs}\n",
		"async def pump():\n    await queue.put('%s' % item)\n",
		"match cmd:\n    case 'quit':\n        pass\n    case other:\n        run(other)\n",
		"try:\n    risky()\nexcept (IOError, OSError) as err:\n    raise RuntimeError('%s failed' % err) from err\n",
		"with open(path) as fh:\n    body = fh.read()\n",
		"text = f'already {formatted}'\n",
		"raw = r'C:\\temp\\%s'\n",
		"doc = '''triple\n%s\n''' % body\n",
		"lambda a, b=1: a + b\n",
		"if x := probe():\n    use(x)\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
}

// goldenCase — запись golden-манифеста rewrite: целый документ и окно.
type goldenCase struct {
	First int    `toml:"first"`
	Last  int    `toml:"last"`
	Input string `toml:"input"`
}

// goldenManifestCases читает манифест переписчика: каждый вход там — документ
// с реальными сайтами, лучший материал для затравки.
func goldenManifestCases() []goldenCase {
	path := filepath.Join("..", "rewrite", "testdata", "golden.toml")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	var manifest struct {
		Cases []goldenCase `toml:"case"`
	}
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return nil
	}
	return manifest.Cases
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
