package scheduler

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// 退避系数上限
const maxBackoff = 32

// Fetcher 调度器驱动的抓取入口
type Fetcher interface {
	FetchFeed(ctx context.Context) ([]string, error)
}

// Scheduler 周期抓取循环:失败时指数退避(封顶),
// 每轮间隔乘以[0.8,1.2)的随机抖动,避免与上游同步抖动
type Scheduler struct {
	fetcher  Fetcher
	interval time.Duration
	backoff  int
}

func NewScheduler(fetcher Fetcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		interval: interval,
		backoff:  1,
	}
}

// Run 循环抓取直到上下文取消,同一时刻只有一轮在执行
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("[Cron] Scheduler started (interval: %s)", s.interval)

	for {
		delay := s.runOnce(ctx)
		log.Printf("[Cron] Sleeping for %.1fs (backoff=%d)", delay.Seconds(), s.backoff)

		select {
		case <-ctx.Done():
			log.Printf("[Cron] Scheduler stopped: %v", ctx.Err())
			return
		case <-time.After(delay):
		}
	}
}

// runOnce 执行一轮抓取,更新退避系数并返回下次间隔。
// 抓取内部已经吞掉单条错误,这里只把整轮失败转成退避。
func (s *Scheduler) runOnce(ctx context.Context) time.Duration {
	log.Printf("[Cron] Fetching feed...")

	if _, err := s.fetcher.FetchFeed(ctx); err != nil {
		s.backoff = s.backoff * 2
		if s.backoff > maxBackoff {
			s.backoff = maxBackoff
		}
		log.Printf("[Cron] Fetch failed: %v (retrying with backoff factor %d)", err, s.backoff)
	} else {
		log.Printf("[Cron] Fetch completed successfully")
		s.backoff = 1
	}

	return s.nextDelay()
}

// nextDelay 间隔 = 基础间隔 × 退避系数 × 抖动
func (s *Scheduler) nextDelay() time.Duration {
	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(s.interval) * float64(s.backoff) * jitter)
}
