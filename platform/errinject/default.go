package errinject

// Default возвращает стандартный каталог сценариев демо-стека:
// девятнадцать сценариев на девять сервисов. Частоты подобраны так,
// чтобы ошибки были заметны в трейсах, но не ломали большинство сессий
func Default() Catalog {
	return Catalog{
		"api-gateway": {
			{
				Name:       "rate_limit_exceeded",
				Rate:       0.02,
				Endpoints:  []string{"/api/*"},
				ErrorKind:  "RateLimitError",
				Message:    "Rate limit exceeded. Please retry after 60 seconds.",
				StatusCode: 429,
			},
			{
				Name:       "service_unavailable",
				Rate:       0.01,
				Endpoints:  []string{"*"},
				ErrorKind:  "ServiceUnavailableError",
				Message:    "Downstream service temporarily unavailable",
				StatusCode: 503,
			},
		},
		"auth-service": {
			{
				Name:       "invalid_token",
				Rate:       0.05,
				Endpoints:  []string{"/validate", "/refresh"},
				ErrorKind:  "AuthenticationError",
				Message:    "Invalid or expired authentication token",
				StatusCode: 401,
			},
			{
				Name:       "account_locked",
				Rate:       0.02,
				Endpoints:  []string{"/login"},
				ErrorKind:  "AccountLockedException",
				Message:    "Account locked due to too many failed attempts",
				StatusCode: 403,
			},
		},
		"user-service": {
			{
				Name:       "user_not_found",
				Rate:       0.03,
				Endpoints:  []string{"/users/*", "/profile"},
				ErrorKind:  "UserNotFoundError",
				Message:    "User not found in database",
				StatusCode: 404,
			},
			{
				Name:       "database_timeout",
				Rate:       0.01,
				Endpoints:  []string{"*"},
				ErrorKind:  "DatabaseTimeoutError",
				Message:    "Database query timed out after 30 seconds",
				StatusCode: 504,
			},
		},
		"order-service": {
			{
				Name:       "order_validation_failed",
				Rate:       0.04,
				Endpoints:  []string{"/orders", "/checkout"},
				ErrorKind:  "OrderValidationError",
				Message:    "Order validation failed: invalid items in cart",
				StatusCode: 400,
			},
			{
				Name:       "inventory_sync_error",
				Rate:       0.02,
				Endpoints:  []string{"/checkout"},
				ErrorKind:  "InventorySyncError",
				Message:    "Failed to sync with inventory service",
				StatusCode: 500,
			},
		},
		"payment-service": {
			{
				Name:       "payment_declined",
				Rate:       0.06,
				Endpoints:  []string{"/process", "/charge"},
				ErrorKind:  "PaymentDeclinedException",
				Message:    "Payment declined by card issuer",
				StatusCode: 402,
			},
			{
				Name:       "fraud_detected",
				Rate:       0.02,
				Endpoints:  []string{"/process"},
				ErrorKind:  "FraudDetectionError",
				Message:    "Transaction flagged by fraud detection system",
				StatusCode: 403,
			},
			{
				Name:       "gateway_timeout",
				Rate:       0.03,
				Endpoints:  []string{"*"},
				ErrorKind:  "PaymentGatewayTimeoutError",
				Message:    "Payment gateway did not respond in time",
				StatusCode: 504,
			},
		},
		"inventory-service": {
			{
				Name:       "out_of_stock",
				Rate:       0.08,
				Endpoints:  []string{"/reserve", "/check"},
				ErrorKind:  "OutOfStockError",
				Message:    "Requested item is out of stock",
				StatusCode: 409,
			},
			{
				Name:       "warehouse_unreachable",
				Rate:       0.02,
				Endpoints:  []string{"*"},
				ErrorKind:  "WarehouseConnectionError",
				Message:    "Unable to connect to warehouse management system",
				StatusCode: 503,
			},
		},
		"notification-service": {
			{
				Name:       "email_delivery_failed",
				Rate:       0.04,
				Endpoints:  []string{"/send", "/email"},
				ErrorKind:  "EmailDeliveryError",
				Message:    "Failed to deliver email: SMTP connection refused",
				StatusCode: 502,
			},
			{
				Name:       "template_not_found",
				Rate:       0.01,
				Endpoints:  []string{"/send"},
				ErrorKind:  "TemplateNotFoundError",
				Message:    "Email template not found",
				StatusCode: 404,
			},
		},
		"analytics-service": {
			{
				Name:       "event_processing_failed",
				Rate:       0.02,
				Endpoints:  []string{"/track", "/events"},
				ErrorKind:  "EventProcessingError",
				Message:    "Failed to process analytics event",
				StatusCode: 500,
			},
			{
				Name:       "queue_full",
				Rate:       0.01,
				Endpoints:  []string{"*"},
				ErrorKind:  "QueueFullError",
				Message:    "Event queue is full, events may be dropped",
				StatusCode: 503,
			},
		},
		"search-service": {
			{
				Name:       "search_timeout",
				Rate:       0.03,
				Endpoints:  []string{"/search", "/query"},
				ErrorKind:  "SearchTimeoutError",
				Message:    "Search query timed out",
				StatusCode: 504,
			},
			{
				Name:       "index_not_ready",
				Rate:       0.01,
				Endpoints:  []string{"*"},
				ErrorKind:  "IndexNotReadyError",
				Message:    "Search index is currently being rebuilt",
				StatusCode: 503,
			},
		},
	}
}
