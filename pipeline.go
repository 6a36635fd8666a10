package logohex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/logohex/firmware"
	"github.com/pkg/errors"
)

// DefaultWorkers is the number of logos converted concurrently by Batch.
const DefaultWorkers = 10

// NameClashError is returned by Batch when two logos would be written to the
// same firmware filename.
type NameClashError struct {
	Name  string
	Files [2]string
}

func (e *NameClashError) Error() string {
	return fmt.Sprintf("logohex: %s and %s both produce %s", e.Files[0], e.Files[1], e.Name)
}

func (c *Converter) findLogos(ctx context.Context, base, skip string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		seen := make(map[string]string)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() {
				// Don't pick up our own output
				if file != base && file == skip {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isLogo(file) {
				return nil
			}

			name := firmware.Name(file)
			if other, ok := seen[name]; ok {
				return &NameClashError{Name: name, Files: [2]string{other, file}}
			}
			seen[name] = file

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) logoWorker(ctx context.Context, in <-chan string, tmpl *firmware.Template, dir string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if _, err := c.ConvertFile(file, tmpl, dir); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch converts every logo found under path, writing the firmware and
// previews into dir using the given number of workers.
func (c *Converter) Batch(path string, tmpl *firmware.Template, dir string, workers int) error {
	base, err := filepath.Abs(path)
	if err != nil {
		return errors.WithStack(err)
	}

	out, err := filepath.Abs(dir)
	if err != nil {
		return errors.WithStack(err)
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findLogos(ctx, base, out)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.logoWorker(ctx, files, tmpl, out)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
