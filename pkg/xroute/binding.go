package xroute

import "github.com/omeyang/logkit/pkg/xlevel"

// Bound 绑定了固定类别的日志句柄。
//
// 约定用法：类型组合一个 Bound 值并以约定字段名（如 log）持有，
// 即可获得与该类型绑定的逐级别日志方法——这是对"编译期为类型生成
// 日志属性"的可移植替代。
//
//	type AuthService struct {
//		log *xroute.Bound
//	}
//
//	func NewAuthService() *AuthService {
//		return &AuthService{log: xroute.Bind(xroute.NewCategory("Auth"))}
//	}
//
//	func (s *AuthService) Login() {
//		s.log.Info("user logged in")
//	}
type Bound struct {
	router   *Router
	category Category
}

// Bind 创建绑定到全局默认 Router 的类别句柄。
// Router 在每次记录时解析，SetDefault 的替换对已有 Bound 生效。
func Bind(category Category) *Bound {
	return &Bound{category: category}
}

// Bind 创建绑定到本 Router 实例的类别句柄。
func (r *Router) Bind(category Category) *Bound {
	return &Bound{router: r, category: category}
}

// Category 返回绑定的类别。
func (b *Bound) Category() Category {
	return b.category
}

// log 提交一次绑定记录。
// skip=3: Caller(0)=callerInfo → log → 级别方法 → 业务代码。
//
//go:noinline
func (b *Bound) log(level xlevel.Level, message string) {
	file, function, line := callerInfo(3)
	r := b.router
	if r == nil {
		r = Default()
	}
	r.Log(message, level, b.category, file, function, line)
}

// Trace 以 Trace 级别记录日志。
func (b *Bound) Trace(message string) { b.log(xlevel.Trace, message) }

// Debug 以 Debug 级别记录日志。
func (b *Bound) Debug(message string) { b.log(xlevel.Debug, message) }

// Print 以 Print 级别记录日志。
func (b *Bound) Print(message string) { b.log(xlevel.Print, message) }

// Info 以 Info 级别记录日志。
func (b *Bound) Info(message string) { b.log(xlevel.Info, message) }

// Notice 以 Notice 级别记录日志。
func (b *Bound) Notice(message string) { b.log(xlevel.Notice, message) }

// Warning 以 Warning 级别记录日志。
func (b *Bound) Warning(message string) { b.log(xlevel.Warning, message) }

// Error 以 Error 级别记录日志。
func (b *Bound) Error(message string) { b.log(xlevel.Error, message) }

// Fatal 以 Fatal 级别记录日志。仅记录，不终止进程。
func (b *Bound) Fatal(message string) { b.log(xlevel.Fatal, message) }

// Success 以 Success 级别记录日志。
func (b *Bound) Success(message string) { b.log(xlevel.Success, message) }

// Done 以 Done 级别记录日志。
func (b *Bound) Done(message string) { b.log(xlevel.Done, message) }

// Network 以 Network 级别记录日志。
func (b *Bound) Network(message string) { b.log(xlevel.Network, message) }

// API 以 API 级别记录日志。
func (b *Bound) API(message string) { b.log(xlevel.API, message) }

// Security 以 Security 级别记录日志。
func (b *Bound) Security(message string) { b.log(xlevel.Security, message) }

// Auth 以 Auth 级别记录日志。
func (b *Bound) Auth(message string) { b.log(xlevel.Auth, message) }

// Metric 以 Metric 级别记录日志。
func (b *Bound) Metric(message string) { b.log(xlevel.Metric, message) }

// Analytics 以 Analytics 级别记录日志。
func (b *Bound) Analytics(message string) { b.log(xlevel.Analytics, message) }

// UI 以 UI 级别记录日志。
func (b *Bound) UI(message string) { b.log(xlevel.UI, message) }

// User 以 User 级别记录日志。
func (b *Bound) User(message string) { b.log(xlevel.User, message) }

// Database 以 Database 级别记录日志。
func (b *Bound) Database(message string) { b.log(xlevel.Database, message) }

// Storage 以 Storage 级别记录日志。
func (b *Bound) Storage(message string) { b.log(xlevel.Storage, message) }
