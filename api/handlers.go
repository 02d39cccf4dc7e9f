package api

import "portfolio-backend/database"

// initializeHandlers wires every handler with its dependencies
func initializeHandlers(db database.Database, uploader MediaUploader, mailer MailSender, environment string, rollbackUploads bool) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(db.ProjectRepo(), uploader, rollbackUploads),
		contactHandler: newContactHandler(mailer),
		healthHandler:  newHealthHandler(db, environment),
	}
}
