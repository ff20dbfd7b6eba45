package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/personas"
)

// Generator запускает покупательские сессии с заданным темпом.
// Сессии перекрываются: новая стартует по тикеру независимо от того,
// закончилась ли предыдущая
type Generator struct {
	gateway           string
	sessionsPerMinute int
	rng               *rand.Rand
	logger            *zap.Logger
	report            *Report
}

// NewGenerator создаёт генератор трафика против указанного gateway
func NewGenerator(gateway string, sessionsPerMinute int, seed int64, logger *zap.Logger) *Generator {
	return &Generator{
		gateway:           strings.TrimRight(gateway, "/"),
		sessionsPerMinute: sessionsPerMinute,
		rng:               rand.New(rand.NewSource(seed)),
		logger:            logger,
		report:            NewReport(),
	}
}

// Run запускает сессии до отмены контекста и дожидается уже начатых.
// g.rng дёргается только из этой горутины: каждой сессии выдаётся свой
// источник, поэтому прогон с одним seed делает одни и те же выборы
func (g *Generator) Run(ctx context.Context) {
	interval := time.Minute / time.Duration(g.sessionsPerMinute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	launch := func() {
		persona := personas.All[g.rng.Intn(len(personas.All))]
		s := newSession(g.gateway, persona, rand.New(rand.NewSource(g.rng.Int63())), g.report, g.logger)
		g.report.AddSession()

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.run(ctx)
		}()
	}

	// первая сессия сразу, дальше по тикеру
	launch()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-ticker.C:
			launch()
		}
	}
}

// Report возвращает накопленную статистику прогона
func (g *Generator) Report() *Report {
	return g.report
}

// Report потокобезопасные счётчики прогона. Неуспехом считается любой
// статус >= 400 и любой запрос, оставшийся без ответа
type Report struct {
	mu        sync.Mutex
	sessions  int
	requests  int
	failures  map[int]int
	transport int
}

// NewReport создаёт пустой отчёт
func NewReport() *Report {
	return &Report{failures: make(map[int]int)}
}

// AddSession учитывает запущенную сессию
func (r *Report) AddSession() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions++
}

// AddResponse учитывает завершённый запрос по его статусу
func (r *Report) AddResponse(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
	if status >= 400 {
		r.failures[status]++
	}
}

// AddTransportFailure учитывает запрос, не получивший ответа
func (r *Report) AddTransportFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
	r.transport++
}

// Print выводит итоговую сводку прогона
func (r *Report) Print(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := r.transport
	codes := make([]int, 0, len(r.failures))
	for code, n := range r.failures {
		codes = append(codes, code)
		total += n
	}
	sort.Ints(codes)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== loadgen summary ===")
	fmt.Fprintf(w, "sessions: %d\n", r.sessions)
	fmt.Fprintf(w, "requests: %d\n", r.requests)
	fmt.Fprintf(w, "failures: %d\n", total)
	for _, code := range codes {
		fmt.Fprintf(w, "  HTTP %d: %d\n", code, r.failures[code])
	}
	if r.transport > 0 {
		fmt.Fprintf(w, "  transport errors: %d\n", r.transport)
	}
}
