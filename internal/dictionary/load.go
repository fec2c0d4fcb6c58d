package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadWords reads one word per line. Blank lines and lines starting with
// '#' are skipped; surrounding whitespace is trimmed.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadTypos reads "misspelling canonical" lines separated by whitespace.
func ReadTypos(r io.Reader) (map[string]string, error) {
	typos := make(map[string]string)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d %q: %w", n, line, ErrMalformedTypo)
		}
		typos[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return typos, nil
}

// open opens name in fsys, transparently decompressing *.gz files.
func open(fsys fs.FS, name string) (io.ReadCloser, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading gzip %s: %w", name, err)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f fs.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func readWordsFile(fsys fs.FS, name string) ([]string, error) {
	rc, err := open(fsys, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	words, err := ReadWords(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return words, nil
}

func readTyposFile(fsys fs.FS, name string) (map[string]string, error) {
	rc, err := open(fsys, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	typos, err := ReadTypos(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return typos, nil
}
