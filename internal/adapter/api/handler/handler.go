package handler

import (
	ws "reliefnet/internal/infrastructure/websocket"
	"reliefnet/internal/usecase"
)

var (
	sessionHandler     *SessionHandler
	phoneLoginHandler  *PhoneLoginHandler
	userHandler        *UserHandler
	helpRequestHandler *HelpRequestHandler
	helpOfferHandler   *HelpOfferHandler
	resourceHandler    *ResourceHandler
	foodPointHandler   *FoodPointHandler
	feedHandler        *FeedHandler
	healthHandler      *HealthHandler
	devTokenHandler    *DevTokenHandler
)

func Setup(
	sessionUseCase *usecase.SessionUseCase,
	phoneLoginUseCase *usecase.PhoneLoginUseCase,
	userUseCase *usecase.UserUseCase,
	helpRequestUseCase *usecase.HelpRequestUseCase,
	helpOfferUseCase *usecase.HelpOfferUseCase,
	resourceUseCase *usecase.ResourceUseCase,
	foodPointUseCase *usecase.FoodPointUseCase,
	cookie CookieConfig,
) {
	sessionHandler = NewSessionHandler(sessionUseCase, cookie)
	phoneLoginHandler = NewPhoneLoginHandler(phoneLoginUseCase, sessionUseCase, cookie)
	userHandler = NewUserHandler(userUseCase)
	helpRequestHandler = NewHelpRequestHandler(helpRequestUseCase)
	helpOfferHandler = NewHelpOfferHandler(helpOfferUseCase)
	resourceHandler = NewResourceHandler(resourceUseCase)
	foodPointHandler = NewFoodPointHandler(foodPointUseCase)
	devTokenHandler = NewDevTokenHandler(sessionUseCase)
}

func SetupFeedHandler(manager *ws.Manager, allowedOrigins []string) {
	feedHandler = NewFeedHandler(manager, allowedOrigins)
}

func SetupHealthHandler(firebaseAuth ConnectionTester) {
	healthHandler = NewHealthHandler(firebaseAuth)
}

func GetSessionHandler() *SessionHandler {
	return sessionHandler
}

func GetPhoneLoginHandler() *PhoneLoginHandler {
	return phoneLoginHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetHelpRequestHandler() *HelpRequestHandler {
	return helpRequestHandler
}

func GetHelpOfferHandler() *HelpOfferHandler {
	return helpOfferHandler
}

func GetResourceHandler() *ResourceHandler {
	return resourceHandler
}

func GetFoodPointHandler() *FoodPointHandler {
	return foodPointHandler
}

func GetFeedHandler() *FeedHandler {
	return feedHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}
