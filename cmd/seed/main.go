// Seeds the coupon pool. Run once before the service starts; re-running is
// safe because existing codes are skipped.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coupon-quest/coupon-quest/internal/config"
	"github.com/coupon-quest/coupon-quest/internal/infrastructure/postgres"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	file := flag.String("file", "", "path to a file with one coupon code per line")
	flag.Parse()

	codes := flag.Args()
	if *file != "" {
		fileCodes, err := readCodes(*file)
		if err != nil {
			log.Fatalf("seed file error: %v", err)
		}
		codes = append(codes, fileCodes...)
	}
	if len(codes) == 0 {
		log.Fatalf("no codes given: pass codes as arguments or via -file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	couponRepo := postgres.NewCouponRepository(pool)
	inserted, err := couponRepo.InsertBatch(ctx, codes)
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}

	logger.Info().Int("submitted", len(codes)).Int64("inserted", inserted).
		Msg("coupon pool seeded")
}

func readCodes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var codes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		code := strings.TrimSpace(scanner.Text())
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes, scanner.Err()
}
