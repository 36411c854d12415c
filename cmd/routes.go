package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON, app.authenticate)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Users
	mux.Post("/users", standardMiddleware.ThenFunc(app.userHandler.CreateUser))
	mux.Post("/users/login", standardMiddleware.ThenFunc(app.userHandler.Login))
	mux.Get("/users/login", authMiddleware.ThenFunc(app.userHandler.CheckAuth))
	mux.Get("/users/:id", standardMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/users/:id", authMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Del("/users/:id", authMiddleware.ThenFunc(app.userHandler.DeleteUser))
	mux.Post("/users/:id/avatar", authMiddleware.ThenFunc(app.userHandler.UploadAvatar))

	// Offers; /offers/premium must be registered before /offers/:id
	mux.Get("/offers", standardMiddleware.ThenFunc(app.offerHandler.ListOffers))
	mux.Post("/offers", authMiddleware.ThenFunc(app.offerHandler.CreateOffer))
	mux.Get("/offers/premium", standardMiddleware.ThenFunc(app.offerHandler.PremiumOffers))
	mux.Get("/offers/:id/comments", standardMiddleware.ThenFunc(app.commentHandler.ListByOffer))
	mux.Post("/offers/:id/comments", authMiddleware.ThenFunc(app.commentHandler.CreateComment))
	mux.Get("/offers/:id", standardMiddleware.ThenFunc(app.offerHandler.GetOfferByID))
	mux.Put("/offers/:id", authMiddleware.ThenFunc(app.offerHandler.UpdateOffer))
	mux.Del("/offers/:id", authMiddleware.ThenFunc(app.offerHandler.DeleteOffer))

	// Comments
	mux.Get("/comments/:id", standardMiddleware.ThenFunc(app.commentHandler.GetCommentByID))
	mux.Put("/comments/:id", authMiddleware.ThenFunc(app.commentHandler.UpdateComment))
	mux.Del("/comments/:id", authMiddleware.ThenFunc(app.commentHandler.DeleteComment))

	// Favorites
	mux.Post("/favorites", authMiddleware.ThenFunc(app.favoriteHandler.AddFavorite))
	mux.Get("/favorites/check/user/:user_id/offer/:offer_id", standardMiddleware.ThenFunc(app.favoriteHandler.CheckFavorite))
	mux.Del("/favorites/user/:user_id/offer/:offer_id", authMiddleware.ThenFunc(app.favoriteHandler.RemoveFavorite))
	mux.Get("/favorites/:user_id", standardMiddleware.ThenFunc(app.favoriteHandler.ListByUser))

	mux.NotFound = standardMiddleware.ThenFunc(app.notFound)

	return mux
}
