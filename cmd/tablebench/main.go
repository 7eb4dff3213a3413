// tablebench seeds a table with N posts and measures create and list
// latency through the repository layer. Tunables via env: N, ROUNDS.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/festive-table/config"
	"github.com/d60-Lab/festive-table/internal/model"
	"github.com/d60-Lab/festive-table/internal/policy"
	"github.com/d60-Lab/festive-table/internal/repository"
	"github.com/d60-Lab/festive-table/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	repo := repository.NewPostRepository(db)
	pol := policy.New(nil, nil)
	ctx := context.Background()

	n := envInt("N", 500)
	rounds := envInt("ROUNDS", 200)

	_ = db.Exec("DELETE FROM posts").Error

	icons := pol.Icons()
	createDurations := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		post := &model.Post{
			Name:        fmt.Sprintf("guest%03d", i%1000),
			Icon:        icons[i%len(icons)],
			Message:     fmt.Sprintf("dish number %d", i),
			AuthorToken: policy.NewAuthorToken(),
		}
		st := time.Now()
		if err := repo.Create(ctx, post); err != nil {
			panic(err)
		}
		createDurations = append(createDurations, time.Since(st))
	}

	listDurations := make([]time.Duration, 0, rounds)
	var rows int
	for i := 0; i < rounds; i++ {
		st := time.Now()
		posts := must(repo.List(ctx))
		listDurations = append(listDurations, time.Since(st))
		rows = len(posts)
	}

	var createSum, listSum time.Duration
	for _, d := range createDurations {
		createSum += d
	}
	for _, d := range listDurations {
		listSum += d
	}
	fmt.Printf("N=%d ROUNDS=%d driver=%s\n", n, rounds, cfg.Database.Driver)
	fmt.Printf("Create: avg=%v p95=%v p99=%v\n", createSum/time.Duration(len(createDurations)), pct(createDurations, 0.95), pct(createDurations, 0.99))
	fmt.Printf("List (full refetch, rows=%d): avg=%v p95=%v p99=%v\n", rows, listSum/time.Duration(len(listDurations)), pct(listDurations, 0.95), pct(listDurations, 0.99))
}
