package topology

// Имена сервисов стека. Используются как ключи реестра и каталога сценариев,
// а также как значение поля service в error envelope
const (
	APIGateway          = "api-gateway"
	AuthService         = "auth-service"
	UserService         = "user-service"
	OrderService        = "order-service"
	PaymentService      = "payment-service"
	InventoryService    = "inventory-service"
	NotificationService = "notification-service"
	AnalyticsService    = "analytics-service"
	SearchService       = "search-service"
)

// Default возвращает реестр из девяти сервисов демо-стека
// с портами 5000..5008
func Default(env string) *Registry {
	return New(env, []Service{
		{
			Name: APIGateway,
			Port: 5000,
			Downstream: []string{
				AuthService, UserService, OrderService,
				SearchService, InventoryService,
			},
		},
		{
			Name:       AuthService,
			Port:       5001,
			Downstream: []string{AnalyticsService},
		},
		{
			Name:       UserService,
			Port:       5002,
			Downstream: []string{AnalyticsService, NotificationService},
		},
		{
			Name:       OrderService,
			Port:       5003,
			Downstream: []string{PaymentService, InventoryService, NotificationService},
		},
		{
			Name:       PaymentService,
			Port:       5004,
			Downstream: []string{NotificationService},
		},
		{
			Name:       InventoryService,
			Port:       5005,
			Downstream: []string{NotificationService},
		},
		{
			Name: NotificationService,
			Port: 5006,
		},
		{
			Name: AnalyticsService,
			Port: 5007,
		},
		{
			Name:       SearchService,
			Port:       5008,
			Downstream: []string{InventoryService},
		},
	})
}
