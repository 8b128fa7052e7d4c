package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"scenegen/internal/canonical"
	"scenegen/internal/codegen"
	"scenegen/internal/codegen/cpp"
	"scenegen/internal/codegen/csharp"
	"scenegen/internal/config"
	"scenegen/internal/loader"
	"scenegen/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "scenegen",
		Short: "Bake animated scene graphs into generated source code",
	}
	configPath string
	language   string
	className  string
	outputDir  string
	duration   string
	cachePath  string
	noComments bool
	noCache    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a scenegen config file (YAML)")

	bakeCmd.Flags().StringVarP(&language, "language", "l", "", "Target language: csharp or cpp")
	bakeCmd.Flags().StringVarP(&className, "class", "n", "", "Generated class name (default: the scene name)")
	bakeCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory")
	bakeCmd.Flags().StringVar(&duration, "duration", "", "Override the scene duration (e.g. 1500ms)")
	bakeCmd.Flags().StringVar(&cachePath, "db", "", "Bake cache database path")
	bakeCmd.Flags().BoolVar(&noComments, "no-comments", false, "Suppress descriptive comments in the output")
	bakeCmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the bake cache")

	pruneCmd.Flags().StringVar(&cachePath, "db", "", "Bake cache database path")

	rootCmd.AddCommand(bakeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(pruneCmd)
}

func loadSettings() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if language != "" {
		cfg.Output.Language = language
	}
	if className != "" {
		cfg.Output.ClassName = className
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if cachePath != "" {
		cfg.Cache.Path = cachePath
	}
	if noComments {
		cfg.Output.Comments = false
	}
	return cfg
}

// targetFor maps a language name to its code generation target.
func targetFor(lang string) (codegen.Target, string, error) {
	switch lang {
	case "csharp":
		return csharp.New(), ".cs", nil
	case "cpp":
		return cpp.New(), ".cpp", nil
	}
	return codegen.Target{}, "", fmt.Errorf("unknown language %q (want csharp or cpp)", lang)
}

var bakeCmd = &cobra.Command{
	Use:   "bake <scene.yaml>",
	Short: "Compile a scene document into a single generated source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenePath := args[0]
		cfg := loadSettings()

		target, ext, err := targetFor(cfg.Output.Language)
		if err != nil {
			log.Fatalf("%v", err)
		}

		raw, err := os.ReadFile(scenePath)
		if err != nil {
			log.Fatalf("Failed to read scene: %v", err)
		}

		// 1. Load and validate the scene document
		fmt.Printf("📂 Loading scene: %s\n", scenePath)
		sc, err := loader.Parse(raw)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}

		if duration != "" {
			d, err := time.ParseDuration(duration)
			if err != nil || d <= 0 {
				log.Fatalf("Invalid --duration %q: want a positive duration like 1500ms", duration)
			}
			sc.Duration = d
		}

		name := cfg.Output.ClassName
		if name == "" {
			name = sc.Name
		}
		opts := codegen.Options{
			ClassName: name,
			Size:      sc.Size,
			Duration:  sc.Duration,
			Comments:  cfg.Output.Comments,
		}

		outPath := filepath.Join(cfg.Output.Dir, name+ext)
		key := storage.BakeKey{
			SceneHash: storage.HashBytes(raw),
			Language:  target.Name,
			OptionsHash: storage.HashBytes([]byte(fmt.Sprintf("%s|%g|%g|%d|%t",
				opts.ClassName, opts.Size.X, opts.Size.Y, opts.Duration, opts.Comments))),
		}

		ctx := context.Background()

		// 2. Check the bake cache
		var store storage.BakeStore
		if cfg.Cache.Enabled && !noCache {
			s, err := storage.NewSQLiteStore(cfg.Cache.Path)
			if err != nil {
				log.Fatalf("Failed to open cache: %v", err)
			}
			defer s.Close()
			store = s

			if entry, err := store.Get(ctx, key); err != nil {
				log.Fatalf("Cache lookup failed: %v", err)
			} else if entry != nil {
				if err := os.WriteFile(outPath, []byte(entry.Output), 0o644); err != nil {
					log.Fatalf("Failed to write output: %v", err)
				}
				fmt.Printf("⚡ Cache hit. Wrote %s\n", outPath)
				return
			}
		}

		// 3. Canonicalize and compile
		fmt.Printf("🚀 Baking %d nodes for %s...\n", sc.Graph.Len(), target.Name)
		start := time.Now()
		view, err := canonical.Build(sc.Graph)
		if err != nil {
			log.Fatalf("Canonicalization failed: %v", err)
		}
		output, err := codegen.Compile(view, target, opts)
		if err != nil {
			log.Fatalf("Bake failed: %v", err)
		}
		fmt.Printf("✅ Baked in %v.\n", time.Since(start))

		// 4. Write the generated source
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
		if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}

		// 5. Record in the cache
		if store != nil {
			entry := &storage.BakeEntry{
				Key:       key,
				SceneName: sc.Name,
				ClassName: name,
				Output:    output,
				CreatedAt: time.Now().UTC(),
			}
			if err := store.Put(ctx, entry); err != nil {
				log.Printf("⚠️ Failed to record bake in cache: %v", err)
			}
		}

		fmt.Printf("🎉 Bake complete! Output: %s\n", outPath)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <scene.yaml>",
	Short: "Print the canonicalized view of a scene document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := loader.Load(args[0])
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}

		view, err := canonical.Build(sc.Graph)
		if err != nil {
			log.Fatalf("Canonicalization failed: %v", err)
		}
		nodes := append([]*canonical.CanonicalNode(nil), view.Nodes()...)
		sort.Slice(nodes, func(i, j int) bool {
			return nodes[i].Position < nodes[j].Position
		})

		fmt.Printf("Scene %q: %d nodes, %d canonical groups\n", sc.Name, sc.Graph.Len(), len(nodes))
		for _, cn := range nodes {
			fmt.Printf("  [%3d] %-32s group=%d inbound=%d\n",
				cn.Position, cn.Kind().TypeName(), cn.GroupSize, len(cn.Inbound))
		}
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete bake cache entries older than 30 days",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadSettings()

		store, err := storage.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			log.Fatalf("Failed to open cache: %v", err)
		}
		defer store.Close()

		removed, err := store.Prune(context.Background(), time.Now().AddDate(0, 0, -30))
		if err != nil {
			log.Fatalf("Prune failed: %v", err)
		}
		fmt.Printf("🧹 Removed %d cache entries.\n", removed)
	},
}
