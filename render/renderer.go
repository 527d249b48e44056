// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render turns trees into images with the Graphviz dot tool.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/cybrota/avlkit/avl"
)

const (
	DefaultDotPath = "dot"
	DefaultFormat  = "png"
)

// ErrDotNotFound is returned when the dot binary cannot be located.
var ErrDotNotFound = errors.New("graphviz dot not found, install Graphviz first")

// Renderer writes <Directory>/<name>.dot and runs dot on it.
type Renderer struct {
	DotPath   string
	Format    string
	Timeout   time.Duration
	Directory string

	runner *Runner
	cache  *cache.Cache
	log    *logger.L
}

// NewRenderer returns a renderer writing into directory with default dot
// settings. The logger must be initialised.
func NewRenderer(directory string) *Renderer {
	return &Renderer{
		DotPath:   DefaultDotPath,
		Format:    DefaultFormat,
		Timeout:   DefaultCmdTimeout,
		Directory: directory,
		runner:    NewRunner(),
		cache:     NewRenderCache(),
		log:       logger.New("render"),
	}
}

// Available reports whether the dot binary can be run. The answer is cached
// for a short while.
func (r *Renderer) Available() bool {
	if ok, known := getAvailable(r.cache, r.DotPath); known {
		return ok
	}
	ok := r.runner.CheckCommandExists(r.DotPath)
	cacheAvailable(r.cache, r.DotPath, ok)
	if !ok {
		r.log.Warnf("dot binary %q not found", r.DotPath)
	}
	return ok
}

// Render draws tree and returns the path of the produced image. A shape
// already rendered by this Renderer is copied rather than drawn again.
func (r *Renderer) Render(ctx context.Context, tree *avl.Tree, name string) (string, error) {
	if !r.Available() {
		return "", ErrDotNotFound
	}

	var dot bytes.Buffer
	if err := tree.WriteDOT(&dot); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.Directory, 0o755); err != nil {
		return "", fmt.Errorf("create render directory: %w", err)
	}
	dotFile := filepath.Join(r.Directory, name+".dot")
	imageFile := filepath.Join(r.Directory, name+"."+r.Format)

	if err := os.WriteFile(dotFile, dot.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write dot file: %w", err)
	}

	key := digest(r.Format, dot.Bytes())
	if previous, ok := getImage(r.cache, key); ok {
		if previous == imageFile {
			if _, err := os.Stat(imageFile); err == nil {
				r.log.Debugf("%s is up to date", imageFile)
				return imageFile, nil
			}
		} else if err := copyFile(previous, imageFile); err == nil {
			r.log.Debugf("reused %s for %s", previous, imageFile)
			return imageFile, nil
		} else {
			r.log.Debugf("cached image %s unusable: %s", previous, err)
		}
	}

	out, err := r.runner.RunWithTimeout(ctx, r.Timeout, r.DotPath, "-T"+r.Format, "-o", imageFile, dotFile)
	if err != nil {
		out = strings.TrimSpace(out)
		if out != "" {
			return "", fmt.Errorf("dot failed: %w: %s", err, out)
		}
		return "", fmt.Errorf("dot failed: %w", err)
	}

	cacheImage(r.cache, key, imageFile)
	r.log.Infof("rendered %s", imageFile)
	return imageFile, nil
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
