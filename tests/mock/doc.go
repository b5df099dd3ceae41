// Package mock holds the gomock doubles used by unit tests.
package mock

//go:generate mockgen -source=../../internal/usecase/commands/auth.go -destination=commands/auth.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/checkout.go -destination=commands/checkout.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/coupon.go -destination=commands/coupon.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/order.go -destination=commands/order.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/payment.go -destination=commands/payment.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/points.go -destination=commands/points.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/queries/cart.go -destination=queries/cart.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/queries/coupon.go -destination=queries/coupon.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/queries/order.go -destination=queries/order.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/queries/points.go -destination=queries/points.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/queries/user.go -destination=queries/user.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/shared/uow.go -destination=shared/uow.go -package=sharedmock
//go:generate mockgen -source=../../internal/usecase/shared/payment.go -destination=shared/payment.go -package=sharedmock
