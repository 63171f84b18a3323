package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/config"
	"github.com/infravue/infravue/pkg/database"
	"github.com/infravue/infravue/pkg/inference"
)

// Reconciliation tool: compares the local storage tree against the image
// table and reports orphans in both directions. Read-only unless -fix is set.
// Usage: go run script/reconcile_orphans.go [-config=./config.yaml] [-fix]

var (
	configPath = flag.String("config", "./config.yaml", "path to config file")
	fix        = flag.Bool("fix", false, "delete orphaned files and records instead of just reporting")
)

func main() {
	flag.Parse()

	log.Println("========== storage reconciliation ==========")

	cfg := config.MustLoad(*configPath)
	if cfg.Storage.Type != "local" {
		log.Fatalf("reconciliation only supports local storage, got %q", cfg.Storage.Type)
	}
	basePath := cfg.Storage.Local.BasePath

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx := context.Background()

	recorded, err := loadRecordedFiles(ctx, db)
	if err != nil {
		log.Fatalf("load image records: %v", err)
	}
	onDisk, err := scanStorageTree(basePath)
	if err != nil {
		log.Fatalf("scan storage tree: %v", err)
	}

	var missingFiles, orphanFiles int

	for key, img := range recorded {
		if _, ok := onDisk[key]; !ok {
			missingFiles++
			log.Printf("record without file: image_id=%s %s", img.ImageID, key)
			if *fix {
				if err := db.WithContext(ctx).Where("image_id = ?", img.ImageID).Delete(&model.Image{}).Error; err != nil {
					log.Printf("  delete record failed: %v", err)
				} else {
					log.Printf("  record deleted")
				}
			}
		}
	}

	for key := range onDisk {
		if _, ok := recorded[key]; !ok {
			orphanFiles++
			log.Printf("file without record: %s", key)
			if *fix {
				if err := os.Remove(filepath.Join(basePath, filepath.FromSlash(key))); err != nil {
					log.Printf("  delete file failed: %v", err)
				} else {
					log.Printf("  file deleted")
				}
			}
		}
	}

	log.Printf("checked %d records and %d files: %d records without files, %d files without records",
		len(recorded), len(onDisk), missingFiles, orphanFiles)
	log.Println("========== done ==========")
}

// loadRecordedFiles maps "projectID/filename" keys to their image records.
func loadRecordedFiles(ctx context.Context, db *gorm.DB) (map[string]model.Image, error) {
	var images []model.Image
	if err := db.WithContext(ctx).Find(&images).Error; err != nil {
		return nil, err
	}
	out := make(map[string]model.Image, len(images))
	for _, img := range images {
		out[fmt.Sprintf("%d/%s", img.ProjectID, img.Filename)] = img
	}
	return out, nil
}

// scanStorageTree maps "projectID/filename" keys for every managed file under
// basePath. Temp files, dotfiles and generated derivatives are skipped; so are
// directories that are not numeric project ids.
func scanStorageTree(basePath string) (map[string]struct{}, error) {
	out := make(map[string]struct{})

	entries, err := os.ReadDir(basePath)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := strconv.ParseUint(entry.Name(), 10, 64); err != nil {
			continue
		}
		files, err := os.ReadDir(filepath.Join(basePath, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, inference.DerivativePrefix) {
				continue
			}
			out[entry.Name()+"/"+name] = struct{}{}
		}
	}
	return out, nil
}
