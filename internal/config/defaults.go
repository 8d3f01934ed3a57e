package config

// Default конфигурация со значениями по умолчанию, поверх которой читается TOML
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "clinic",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "clinic-booking",
		},
		Clinic: ClinicConfig{
			Name:     "Smile Hub Dental Clinic",
			Timezone: "Asia/Colombo",
			TimeSlots: []string{
				"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM", "12:00 PM",
				"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM",
			},
			ClosedWeekdays:     []string{"sunday"},
			AdvanceBookingDays: 90,
		},
		Lifecycle: LifecycleConfig{
			RequireCancellationReason: true,
			DefaultCancellationReason: "Schedule conflict",
		},
		Mailer: MailerConfig{
			Provider: "log",
			FromName: "Smile Hub Dental Clinic",
			Timeout:  10,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "clinic:appointments",
		},
		Auth: AuthConfig{
			Issuer:        "clinic-booking",
			TokenTTLHours: 12,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			Burst:             5,
		},
	}
}
