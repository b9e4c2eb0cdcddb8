package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"terrasim.ai/internal/persistence/archive"
	"terrasim.ai/internal/persistence/indexdb"
	persistlog "terrasim.ai/internal/persistence/log"
	"terrasim.ai/internal/persistence/mirror"
	"terrasim.ai/internal/persistence/terrainblob"
	"terrasim.ai/internal/sim/heightmap"
	"terrasim.ai/internal/sim/terrain"
	"terrasim.ai/internal/sim/tuning"
	"terrasim.ai/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configPath = flag.String("config", "./configs/world.yaml", "world config path")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Int64("seed", 0, "seed override (0: use config)")
		loadLatest = flag.Bool("load_latest", true, "resume from latest indexed save if present")
		disableDB  = flag.Bool("disable_db", false, "disable the save index")
		keepSaves  = flag.Int("keep_saves", 5, "saves kept in the world dir; older ones are archived")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[terraind] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := tuning.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("config not found (%s); using defaults", *configPath)
			cfg = tuning.Defaults()
		} else {
			logger.Fatalf("load config: %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	worldDir := filepath.Join(*dataDir, "worlds", cfg.WorldID)
	_ = os.MkdirAll(worldDir, 0o755)

	var idx *indexdb.SaveIndex
	if !*disableDB {
		idx, err = indexdb.Open(filepath.Join(worldDir, "index.db"))
		if err != nil {
			logger.Fatalf("open save index: %v", err)
		}
		defer idx.Close()
	}

	st, err := openWorld(cfg, idx, *loadLatest, logger)
	if err != nil {
		logger.Fatalf("open world: %v", err)
	}

	editLog := persistlog.NewEditLogger(worldDir)
	defer editLog.Close()

	saveMirror := openMirror(*dataDir, logger)
	defer saveMirror.Close()

	server := ws.NewServer(st, cfg.WorldID, cfg.Seed, logger, editLog)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", server.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(rw, "ok")
	})

	httpSrv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		logger.Printf("listening on %s (world %s, %dx%d, seed %d)",
			*addr, cfg.WorldID, st.Width(), st.Height(), cfg.Seed)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Printf("shutting down, writing save")
	savePath, err := writeSave(st, cfg, worldDir, idx)
	if err != nil {
		logger.Printf("write save: %v", err)
	} else {
		saveMirror.Enqueue(savePath)
		if archived, err := archive.Retain(worldDir, cfg.WorldID, *keepSaves); err != nil {
			logger.Printf("archive saves: %v", err)
		} else if len(archived) > 0 {
			logger.Printf("archived %d old saves", len(archived))
		}
	}
	_ = httpSrv.Close()
}

// openMirror builds the optional S3 save mirror from the environment.
// With no endpoint or bucket configured mirroring is off and the returned
// nil mirror ignores calls; a partial configuration is reported and also
// disables it.
func openMirror(dataDir string, logger *log.Logger) *mirror.Mirror {
	endpoint := os.Getenv("TERRASIM_S3_ENDPOINT")
	bucket := os.Getenv("TERRASIM_S3_BUCKET")
	accessKey := os.Getenv("TERRASIM_S3_ACCESS_KEY")
	secretKey := os.Getenv("TERRASIM_S3_SECRET_KEY")
	if endpoint == "" && bucket == "" {
		return nil
	}
	client, err := mirror.NewS3Client(endpoint, bucket, accessKey, secretKey)
	if err != nil {
		logger.Printf("save mirror disabled: %v", err)
		return nil
	}
	logger.Printf("mirroring saves to %s/%s", endpoint, bucket)
	return mirror.New(client, dataDir, os.Getenv("TERRASIM_S3_PREFIX"), 1, logger)
}

func openWorld(cfg tuning.Config, idx *indexdb.SaveIndex, loadLatest bool, logger *log.Logger) (*terrain.State, error) {
	if idx != nil && loadLatest {
		path, err := idx.LatestPath(cfg.WorldID)
		if err != nil {
			return nil, err
		}
		if path != "" {
			blob, err := terrainblob.Read(path)
			if err == nil {
				if st, err := blob.IntoState(); err == nil {
					logger.Printf("resumed from %s", path)
					return st, nil
				}
			}
			logger.Printf("could not resume from %s, generating fresh", path)
		}
	}

	st := terrain.New(cfg.Width, cfg.Height)
	biome := cfg.ResolveBiome()
	switch cfg.Generator {
	case "runtime":
		pipe := heightmap.New(cfg.Seed)
		pipe.ViewRadius = cfg.ViewRadius
		gen := terrain.NewRuntimeGenerator(pipe, cfg.ErosionIterations)
		if err := gen.Generate(st, cfg.Seed, biome); err != nil {
			return nil, err
		}
	default:
		terrain.Generate(st, cfg.Seed, biome)
	}
	logger.Printf("generated %s world (biome %q)", cfg.Generator, strings.TrimSpace(biome.ID))
	return st, nil
}

func writeSave(st *terrain.State, cfg tuning.Config, worldDir string, idx *indexdb.SaveIndex) (string, error) {
	blob := terrainblob.FromState(st, cfg.WorldID, cfg.Seed)
	path := filepath.Join(worldDir, fmt.Sprintf("terrain-%s.json.zst", blob.Digest()[:12]))
	if err := terrainblob.Write(path, blob); err != nil {
		return "", err
	}
	if idx == nil {
		return path, nil
	}
	return path, idx.RecordSave(indexdb.SaveRow{
		WorldID:      cfg.WorldID,
		Seed:         cfg.Seed,
		BiomeID:      blob.BiomeID,
		Path:         path,
		Digest:       blob.Digest(),
		Width:        st.Width(),
		Height:       st.Height(),
		WaterCells:   len(blob.Water),
		FeatureCells: len(blob.Features),
	})
}
