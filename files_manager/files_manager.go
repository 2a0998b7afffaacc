package files_manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fileconv/contracts"
)

type InputEntry = contracts.InputEntry
type InputFolder = contracts.InputFolder
type ConversionResult = contracts.ConversionResult

var (
	ErrOutputExists  = errors.New("output file already exists")
	ErrInvalidTarget = errors.New("target must be a bare extension")
)

// OSFile is an InputFile backed by a path on disk.
type OSFile struct {
	path string
	size int64
}

var _ contracts.InputFile = (*OSFile)(nil)

func NewOSFile(path string) (*OSFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &OSFile{path: path, size: info.Size()}, nil
}

func (f *OSFile) Name() string {
	return filepath.Base(f.path)
}

func (f *OSFile) Size() int64 {
	return f.size
}

func (f *OSFile) Path() string {
	return f.path
}

func (f *OSFile) ReadAll() ([]byte, error) {
	return os.ReadFile(f.path)
}

func skipEntry(name string) bool {
	return strings.HasPrefix(name, "._")
}

// GetInputPaths lists the regular files directly inside dir.
func GetInputPaths(dir string) ([]string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}
	paths := make([]string, 0, len(entries))
	var size int64 = 0
	for _, entry := range entries {
		if entry.IsDir() || skipEntry(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
		size += info.Size()
	}
	return paths, size, nil
}

// CollectInputs expands paths into folders of input files. A file argument
// forms a folder of its own; a directory contributes its direct files, and
// with recursive set every non-empty subdirectory becomes another folder.
// RelDir of each entry is relative to the directory argument it came from.
func CollectInputs(paths []string, recursive bool) ([]InputFolder, error) {
	folders := make([]InputFolder, 0, len(paths))

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if skipEntry(info.Name()) {
				continue
			}
			folders = append(folders, InputFolder{
				Name:      info.Name(),
				Path:      filepath.Dir(root),
				Entries:   []InputEntry{{Path: root, Size: info.Size()}},
				FilesSize: info.Size(),
			})
			continue
		}

		if !recursive {
			folder, err := readFolder(root, root)
			if err != nil {
				return nil, err
			}
			if len(folder.Entries) > 0 {
				folders = append(folders, folder)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipEntry(d.Name()) {
				return filepath.SkipDir
			}
			folder, err := readFolder(root, path)
			if err != nil {
				return err
			}
			if len(folder.Entries) > 0 {
				folders = append(folders, folder)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return folders, nil
}

func readFolder(root, dir string) (InputFolder, error) {
	paths, size, err := GetInputPaths(dir)
	if err != nil {
		return InputFolder{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return InputFolder{}, err
	}
	if rel == "." {
		rel = ""
	}

	folder := InputFolder{
		Name:      filepath.Base(dir),
		Path:      dir,
		Entries:   make([]InputEntry, 0, len(paths)),
		FilesSize: size,
	}
	for _, p := range paths {
		var entrySize int64
		if info, err := os.Stat(p); err == nil {
			entrySize = info.Size()
		}
		folder.Entries = append(folder.Entries, InputEntry{Path: p, RelDir: rel, Size: entrySize})
	}
	return folder, nil
}

// OutputName replaces the last extension of name with target. A name
// without a dot keeps the whole name. Targets that could leave the output
// directory are rejected with ErrInvalidTarget.
func OutputName(name, target string) (string, error) {
	if target == "" || target == "." || target == ".." || strings.ContainsAny(target, `/\`+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", target, ErrInvalidTarget)
	}
	base := filepath.Base(name)
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}
	return base + "." + target, nil
}

// CheckOutputDir creates dir if missing.
func CheckOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory required")
	}
	if stat, err := os.Stat(dir); err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("output path %s is not a directory", dir)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// WriteResult writes result under dir as OutputName(name, target) and
// returns the final path. The data goes to a temporary file first and is
// renamed into place.
func WriteResult(dir, name, target string, result *ConversionResult, overwrite bool) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no result to write for %s", name)
	}
	outName, err := OutputName(name, target)
	if err != nil {
		return "", err
	}
	if err := CheckOutputDir(dir); err != nil {
		return "", err
	}

	outPath := filepath.Join(dir, outName)
	if !overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return "", fmt.Errorf("%s: %w", outPath, ErrOutputExists)
		}
	}

	tmp, err := os.CreateTemp(dir, ".fileconv-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(result.Data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}
	return outPath, nil
}
