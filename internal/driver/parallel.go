package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fstrify/internal/diag"
	"fstrify/internal/observ"
	"fstrify/internal/rewrite"
	"fstrify/internal/scanpipeline"
	"fstrify/internal/source"
)

// ScanDirOptions настраивает параллельный обход директории.
type ScanDirOptions struct {
	Scan ScanOptions
	// Jobs ограничивает число одновременных воркеров; <=0 — GOMAXPROCS.
	Jobs int
	// Cache пропускает парсинг файлов с известным хешем содержимого. nil — без кеша.
	Cache *DiskCache
	// Progress получает события хода обхода. nil — без событий.
	Progress scanpipeline.ProgressSink
	// Timings, если не nil, накапливает длительности фаз обхода:
	// StageLoad — последовательная предзагрузка, StageScan — стена
	// параллельного parse+scan. Пишется только из вызывающей горутины.
	Timings *scanpipeline.Timings
}

// ScanDirResult содержит результат сканирования одного файла
type ScanDirResult struct {
	Path   string         // путь файла, как его нашёл обход
	FileID source.FileID  // ID файла в FileSet
	Bag    *diag.Bag      // диагностики
	Sites  []rewrite.Site // найденные сайты
	Cached bool           // сайты пришли из кеша, без парсинга
}

// ListPyFiles возвращает отсортированный список всех *.py файлов в директории.
func ListPyFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ScanDir сканирует все *.py файлы в директории параллельно. Результаты
// идут в порядке отсортированных путей независимо от порядка завершения
// воркеров.
func ScanDir(ctx context.Context, dir string, opts ScanDirOptions) (*source.FileSet, []ScanDirResult, error) {
	// Собираем список файлов
	files, err := ListPyFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// FileSet не потокобезопасен: все файлы загружаем заранее, воркеры
	// его только читают. Для не загрузившихся файлов регистрируем пустой
	// виртуальный файл, чтобы спаны диагностик было на чём разрешать.
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	loadStarted := time.Now()
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}
	if opts.Timings != nil {
		opts.Timings.Set(scanpipeline.StageLoad, time.Since(loadStarted))
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	scanpipeline.EmitQueued(opts.Progress, files)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ScanDirResult, len(files))

	scanStarted := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			fileID := fileIDs[path]
			bag := diag.NewBag(opts.Scan.MaxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(
					diag.IOLoadFileError,
					source.Span{File: fileID},
					"failed to load file: "+loadErr.Error(),
				))
				results[i] = ScanDirResult{Path: path, FileID: fileID, Bag: bag}
				emit(opts.Progress, scanpipeline.Event{
					File:    path,
					Stage:   scanpipeline.StageLoad,
					Status:  scanpipeline.StatusError,
					Err:     loadErr,
					Elapsed: time.Since(started),
				})
				return nil
			}

			file := fileSet.Get(fileID)
			results[i] = scanWorker(fileSet, file, path, opts, bag, started)
			return nil
		})
	}

	// Ждём завершения всех горутин
	err = g.Wait()
	if opts.Timings != nil {
		opts.Timings.Set(scanpipeline.StageScan, time.Since(scanStarted))
	}
	if err != nil {
		return fileSet, results, err
	}

	return fileSet, results, nil
}

// scanWorker обрабатывает один предзагруженный файл: кеш, иначе
// parse + scan, и запись свежего результата обратно в кеш.
func scanWorker(
	fileSet *source.FileSet,
	file *source.File,
	path string,
	opts ScanDirOptions,
	bag *diag.Bag,
	started time.Time,
) ScanDirResult {
	result := ScanDirResult{Path: path, FileID: file.ID, Bag: bag}

	var timer *observ.Timer
	if opts.Scan.EnableTimings {
		timer = observ.NewTimer()
	}

	if opts.Cache != nil {
		var payload ScanPayload
		hit, err := opts.Cache.Get(file.Hash, &payload)
		if err != nil {
			bag.Add(diag.NewWarning(
				diag.IOCacheError,
				source.Span{File: file.ID},
				"scan cache read failed: "+err.Error(),
			))
		}
		if hit {
			sites := payloadToSites(file.ID, &payload)
			sites = filterSites(sites, opts.Scan.FirstLine, opts.Scan.LastLine)
			siteDiagnostics(bag, sites)
			if timer != nil {
				idx := timer.Begin("cache")
				timer.End(idx, fmt.Sprintf("sites=%d", len(sites)))
				report := timer.Report()
				appendTimingDiagnostic(bag, timingPayload{
					Kind:    "file",
					Path:    path,
					TotalMS: report.TotalMS,
					Phases:  report.Phases,
				})
			}
			bag.Sort()
			result.Sites = sites
			result.Cached = true
			emit(opts.Progress, scanpipeline.Event{
				File:    path,
				Stage:   scanpipeline.StageScan,
				Status:  scanpipeline.StatusDone,
				Elapsed: time.Since(started),
				Sites:   len(sites),
			})
			return result
		}
	}

	emit(opts.Progress, scanpipeline.Event{
		File:   path,
		Stage:  scanpipeline.StageParse,
		Status: scanpipeline.StatusWorking,
	})

	parseIdx := -1
	if timer != nil {
		parseIdx = timer.Begin("parse")
	}
	builder, _, err := parseLoaded(fileSet, file, bag)
	if timer != nil {
		timer.End(parseIdx, fmt.Sprintf("diags=%d", bag.Len()))
	}
	if err != nil {
		bag.Add(diag.NewError(diag.UnknownCode, source.Span{File: file.ID}, err.Error()))
		emit(opts.Progress, scanpipeline.Event{
			File:    path,
			Stage:   scanpipeline.StageParse,
			Status:  scanpipeline.StatusError,
			Err:     err,
			Elapsed: time.Since(started),
		})
		return result
	}

	if !bag.HasErrors() {
		emit(opts.Progress, scanpipeline.Event{
			File:   path,
			Stage:  scanpipeline.StageScan,
			Status: scanpipeline.StatusWorking,
		})

		scanIdx := -1
		if timer != nil {
			scanIdx = timer.Begin("scan")
		}
		allSites := rewrite.Scan(fileSet, builder, file)
		sites := filterSites(allSites, opts.Scan.FirstLine, opts.Scan.LastLine)
		if timer != nil {
			timer.End(scanIdx, fmt.Sprintf("sites=%d", len(sites)))
		}

		result.Sites = sites
		siteDiagnostics(bag, sites)

		// Кешируем нефильтрованный список: --lines не должен влиять на
		// то, что увидит следующий запуск.
		if opts.Cache != nil {
			if err := opts.Cache.Put(file.Hash, sitesToPayload(path, allSites)); err != nil {
				bag.Add(diag.NewWarning(
					diag.IOCacheError,
					source.Span{File: file.ID},
					"scan cache write failed: "+err.Error(),
				))
			}
		}
	}

	if timer != nil {
		report := timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	bag.Sort()
	emit(opts.Progress, scanpipeline.Event{
		File:    path,
		Stage:   scanpipeline.StageScan,
		Status:  scanpipeline.StatusDone,
		Elapsed: time.Since(started),
		Sites:   len(result.Sites),
	})
	return result
}

func emit(sink scanpipeline.ProgressSink, evt scanpipeline.Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
