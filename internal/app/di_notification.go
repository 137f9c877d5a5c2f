package app

import (
	"fmt"

	"github.com/maasoft/sg-gateway/internal/database"
	notificationHTTP "github.com/maasoft/sg-gateway/internal/notification/http"
	notificationRepository "github.com/maasoft/sg-gateway/internal/notification/repository"
	notificationMySQL "github.com/maasoft/sg-gateway/internal/notification/repository/mysql"
	notificationUseCase "github.com/maasoft/sg-gateway/internal/notification/usecase"
)

// TransactionRepository returns the transaction repository based on database driver.
func (c *Container) TransactionRepository() (notificationUseCase.TransactionRepository, error) {
	var err error
	c.transactionRepositoryInit.Do(func() {
		c.transactionRepository, err = c.initTransactionRepository()
		if err != nil {
			c.initErrors["transactionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionRepository"]; exists {
		return nil, storedErr
	}
	return c.transactionRepository, nil
}

// NotificationUseCase returns the use case storing SG transaction notifications.
func (c *Container) NotificationUseCase() (notificationUseCase.NotificationUseCase, error) {
	var err error
	c.notificationUseCaseInit.Do(func() {
		c.notificationUseCase, err = c.initNotificationUseCase()
		if err != nil {
			c.initErrors["notificationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationUseCase"]; exists {
		return nil, storedErr
	}
	return c.notificationUseCase, nil
}

// NotificationHandler returns the HTTP handler receiving SG notifications.
func (c *Container) NotificationHandler() (*notificationHTTP.NotificationHandler, error) {
	var err error
	c.notificationHandlerInit.Do(func() {
		c.notificationHandler, err = c.initNotificationHandler()
		if err != nil {
			c.initErrors["notificationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["notificationHandler"]; exists {
		return nil, storedErr
	}
	return c.notificationHandler, nil
}

// initTransactionRepository creates the transaction repository based on the database driver.
func (c *Container) initTransactionRepository() (notificationUseCase.TransactionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for transaction repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return notificationRepository.NewPostgreSQLTransactionRepository(db), nil
	case database.DriverMySQL:
		return notificationMySQL.NewMySQLTransactionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initNotificationUseCase() (notificationUseCase.NotificationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for notification use case: %w", err)
	}

	transactionRepository, err := c.TransactionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction repository for notification use case: %w", err)
	}

	baseUseCase := notificationUseCase.NewNotificationUseCase(txManager, transactionRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for notification use case: %w", err)
		}
		return notificationUseCase.NewNotificationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initNotificationHandler() (*notificationHTTP.NotificationHandler, error) {
	useCase, err := c.NotificationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get notification use case for notification handler: %w", err)
	}
	return notificationHTTP.NewNotificationHandler(useCase, c.Logger()), nil
}
