// Package batch distills every accepted file in a directory, one at a time.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"briefly/internal/app/docparse"
	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/history"
	"briefly/internal/app/model"
)

// Distiller is the part of distill.Service the runner needs
type Distiller interface {
	ProcessFile(ctx context.Context, text, fileName string) (*model.DistillationResult, error)
	ProcessCall(ctx context.Context, audio []byte, mimeHint, fileName string) (*model.DistillationResult, error)
}

// File is one input found by CollectFiles
type File struct {
	FullPath string
	Name     string
	Size     int64
	ModTime  time.Time
	IsAudio  bool
}

// FileResult is the outcome for one file; exactly one of Result and Err is set
type FileResult struct {
	File   File
	Result *model.DistillationResult
	Err    error
}

// Report summarizes a run
type Report struct {
	Succeeded int
	Failed    int
	Results   []FileResult
}

// Runner processes files sequentially and continues past per-file failures
type Runner struct {
	distiller Distiller
	sink      history.Sink
	progress  *Progress
	maxBytes  int64
	logger    *zap.Logger
}

// NewRunner creates a runner. sink and progress may be nil.
func NewRunner(distiller Distiller, sink history.Sink, progress *Progress, maxBytes int64, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		distiller: distiller,
		sink:      sink,
		progress:  progress,
		maxBytes:  maxBytes,
		logger:    logger.Named("batch"),
	}
}

// CollectFiles lists accepted audio and document files directly inside dir,
// oldest first. limit <= 0 means no limit.
func CollectFiles(dir string, limit int) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		isAudio := docparse.IsAllowedAudio(name)
		if !isAudio && !docparse.IsAllowedDocument(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			FullPath: filepath.Join(dir, name),
			ModTime:  info.ModTime(),
			Name:     name,
			Size:     info.Size(),
			IsAudio:  isAudio,
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// Run distills files in order. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, files []File) Report {
	report := Report{Results: make([]FileResult, 0, len(files))}
	if len(files) == 0 {
		return report
	}

	r.progress.Start(len(files))
	defer r.progress.Finish()

	for _, file := range files {
		if ctx.Err() != nil {
			r.logger.Warn("batch interrupted", zap.Int("remaining", len(files)-len(report.Results)))
			break
		}

		start := time.Now()
		r.progress.Begin(file.Name)
		result, err := r.processFile(ctx, file)
		r.progress.Done(start, err)

		if err != nil {
			report.Failed++
			if apperrors.IsInputError(err) {
				r.logger.Warn("file skipped", zap.String("file", file.Name), zap.Error(err))
			} else {
				r.logger.Error("file failed", zap.String("file", file.Name), zap.Error(err))
			}
			report.Results = append(report.Results, FileResult{File: file, Err: err})
			continue
		}

		report.Succeeded++
		r.logger.Info("file distilled", zap.String("file", file.Name), zap.String("summary", result.Summary))
		if r.sink != nil {
			if _, err := r.sink.Append(ctx, *result); err != nil {
				r.logger.Warn("history append failed", zap.String("file", file.Name), zap.Error(err))
			}
		}
		report.Results = append(report.Results, FileResult{File: file, Result: result})
	}
	return report
}

func (r *Runner) processFile(ctx context.Context, file File) (*model.DistillationResult, error) {
	if r.maxBytes > 0 && file.Size > r.maxBytes {
		return nil, apperrors.Wrapf(apperrors.ErrPayloadTooLarge, "%s is %d bytes", file.Name, file.Size)
	}

	data, err := os.ReadFile(file.FullPath)
	if err != nil {
		return nil, err
	}

	if file.IsAudio {
		return r.distiller.ProcessCall(ctx, data, docparse.MimeForAudio(file.Name), file.Name)
	}

	text, err := docparse.ExtractText(file.Name, data)
	if err != nil {
		return nil, err
	}
	return r.distiller.ProcessFile(ctx, text, file.Name)
}
