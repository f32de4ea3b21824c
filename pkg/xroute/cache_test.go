package xroute

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
)

func newTestCache(limit int) (*loggerCache, *[]string) {
	evicted := &[]string{}
	handler := slog.NewTextHandler(io.Discard, nil)
	c := newLoggerCache(handler, limit, func(name string) {
		*evicted = append(*evicted, name)
	})
	return c, evicted
}

func TestLoggerCache_AutoEviction(t *testing.T) {
	c, evicted := newTestCache(2)

	c.get(NewAutoCategory("x"))
	c.get(NewAutoCategory("y"))
	c.get(NewAutoCategory("z")) // 超限，淘汰最久未用的 x

	if got := c.count(); got != 2 {
		t.Errorf("count() = %d, want 2", got)
	}
	if len(*evicted) != 1 || (*evicted)[0] != "x" {
		t.Errorf("evicted = %v, want [x]", *evicted)
	}
}

func TestLoggerCache_RecencyRefresh(t *testing.T) {
	c, evicted := newTestCache(2)

	c.get(NewAutoCategory("x"))
	c.get(NewAutoCategory("y"))
	c.get(NewAutoCategory("x")) // 命中刷新新近度
	c.get(NewAutoCategory("z")) // 淘汰 y 而非 x

	if len(*evicted) != 1 || (*evicted)[0] != "y" {
		t.Errorf("evicted = %v, want [y]", *evicted)
	}
}

func TestLoggerCache_NamedNeverEvicted(t *testing.T) {
	c, evicted := newTestCache(1)

	ha := c.get(NewCategory("A"))
	hb := c.get(NewCategory("B"))
	c.get(NewAutoCategory("c"))
	c.get(NewAutoCategory("d")) // 自动分区淘汰只影响自动条目

	if got := c.get(NewCategory("A")); got != ha {
		t.Error("explicit handle A should survive auto churn")
	}
	if got := c.get(NewCategory("B")); got != hb {
		t.Error("explicit handle B should survive auto churn")
	}
	for _, name := range *evicted {
		if name == "A" || name == "B" {
			t.Errorf("named entry %s was evicted", name)
		}
	}
}

func TestLoggerCache_SameNameSameHandle(t *testing.T) {
	c, _ := newTestCache(10)

	h1 := c.get(NewCategory("App"))
	h2 := c.get(NewCategory("App"))
	if h1 != h2 {
		t.Error("repeated explicit lookups should return the same handle")
	}

	// 同名的自动类别复用同一句柄（常驻分区优先）
	h3 := c.get(NewAutoCategory("App"))
	if h3 != h1 {
		t.Error("auto lookup of an explicit name should return the same handle")
	}
}

func TestLoggerCache_PromotionFromAuto(t *testing.T) {
	c, evicted := newTestCache(2)

	h1 := c.get(NewAutoCategory("svc"))
	h2 := c.get(NewCategory("svc")) // 提升为常驻
	if h1 != h2 {
		t.Error("promotion should preserve the handle")
	}
	if len(*evicted) != 0 {
		t.Errorf("promotion counted as eviction: %v", *evicted)
	}

	// 提升后不再受自动分区淘汰影响
	c.get(NewAutoCategory("a"))
	c.get(NewAutoCategory("b"))
	c.get(NewAutoCategory("c"))
	if got := c.get(NewCategory("svc")); got != h1 {
		t.Error("promoted handle should survive auto churn")
	}
}

func TestLoggerCache_SetLimitShrinks(t *testing.T) {
	c, evicted := newTestCache(4)

	for i := 0; i < 4; i++ {
		c.get(NewAutoCategory(fmt.Sprintf("cat-%d", i)))
	}
	c.setLimit(2) // 立即收紧，淘汰最久未用的两条

	if got := c.count(); got != 2 {
		t.Errorf("count() after shrink = %d, want 2", got)
	}
	if len(*evicted) != 2 {
		t.Errorf("evictions after shrink = %v, want 2 entries", *evicted)
	}
}

func TestLoggerCache_UnboundedLimit(t *testing.T) {
	c, evicted := newTestCache(0) // 非正值 = 无上限

	for i := 0; i < 500; i++ {
		c.get(NewAutoCategory(fmt.Sprintf("cat-%d", i)))
	}
	if got := c.count(); got != 500 {
		t.Errorf("count() = %d, want 500", got)
	}
	if len(*evicted) != 0 {
		t.Errorf("unbounded cache evicted: %v", *evicted)
	}

	// 重新设置正值后恢复淘汰
	c.setLimit(10)
	if got := c.count(); got != 10 {
		t.Errorf("count() after re-bounding = %d, want 10", got)
	}
}

func TestLoggerCache_Clear(t *testing.T) {
	c, evicted := newTestCache(10)

	c.get(NewCategory("A"))
	c.get(NewAutoCategory("b"))
	c.clear()

	if got := c.count(); got != 0 {
		t.Errorf("count() after clear = %d, want 0", got)
	}
	if len(*evicted) != 0 {
		t.Errorf("clear counted as eviction: %v", *evicted)
	}

	// 清空后重建句柄
	if h := c.get(NewCategory("A")); h == nil {
		t.Error("get after clear should recreate handle")
	}
}
