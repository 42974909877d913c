package application

import (
	"context"
	"fmt"
	"strings"

	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Chat copy sent by the engine
const (
	msgSelectAlbum      = "Select the album to upload to:"
	msgNoAlbums         = "No albums are available right now. Try again later with /start."
	msgCatalogFailed    = "Could not load the album list. Please try again with /start."
	msgAlbumSelected    = "Album selected"
	msgSendImage        = "Album %s selected. Now send the image, optionally captioned \"title,description\"."
	msgInvalidSelection = "invalid selection"
	msgCatalogAlert     = "could not load albums, try again"
	msgStartFirst       = "start a new session first"
	msgSelectAlbumFirst = "select an album first, send /start"
	msgInvalidInput     = "invalid input, send /start"
	msgCancelled        = "Upload cancelled. Send /start to begin again."
	msgImageFailed      = "Could not download the image. Send /start to try again."
	msgUploadFailed     = "Upload failed. Send /start to try again."
	msgUploaded         = "Uploaded \"%s\" to album %s (%s)."
	msgHelp             = "Available commands:\n/start - Choose an album and upload an image\n/album - Same as /start\n/cancel - Abort the current upload\n/help - Show this message"
)

// Recognized commands
const (
	commandStart  = "/start"
	commandAlbum  = "/album"
	commandCancel = "/cancel"
	commandHelp   = "/help"
)

// ConversationEngine struct - The per-chat upload state machine.
// Transition consumes one update and the current session and returns the next
// session plus the chat effects to execute. Collaborator failures never leave
// the session in a phase it cannot leave.
type ConversationEngine struct {
	catalog      output.AlbumCatalog
	fetcher      output.ImageFetcher
	sink         output.UploadSink
	history      output.UploadHistory
	defaultTitle string
}

// NewConversationEngine func - Creates new conversation engine.
// history may be nil, in which case completed uploads are not recorded.
func NewConversationEngine(
	catalog output.AlbumCatalog,
	fetcher output.ImageFetcher,
	sink output.UploadSink,
	history output.UploadHistory,
	defaultTitle string,
) *ConversationEngine {
	if defaultTitle == "" {
		defaultTitle = domain.DefaultTitle
	}
	return &ConversationEngine{
		catalog:      catalog,
		fetcher:      fetcher,
		sink:         sink,
		history:      history,
		defaultTitle: defaultTitle,
	}
}

// Transition applies update to session
func (e *ConversationEngine) Transition(ctx context.Context, session domain.Session, update domain.Update) (domain.Session, []domain.Effect) {
	switch update.Kind {
	case domain.UpdateKindText:
		return e.handleText(ctx, session, update)
	case domain.UpdateKindPhoto:
		return e.handlePhoto(ctx, session, update)
	case domain.UpdateKindCallback:
		return e.handleCallback(ctx, session, update)
	default:
		logrus.Warnf("Ignoring update %d of unknown kind %q", update.ID, update.Kind)
		return session, nil
	}
}

// handleText - Command routing, valid in every phase
func (e *ConversationEngine) handleText(ctx context.Context, session domain.Session, update domain.Update) (domain.Session, []domain.Effect) {
	switch parseCommand(update.Text) {
	case commandStart, commandAlbum:
		return e.promptAlbumSelection(ctx, session)

	case commandCancel:
		return session.Reset(), []domain.Effect{domain.SendMessage(session.ChatID, msgCancelled)}

	case commandHelp:
		return session, []domain.Effect{domain.SendMessage(session.ChatID, msgHelp)}

	default:
		return session, []domain.Effect{domain.SendMessage(session.ChatID, msgInvalidInput)}
	}
}

// promptAlbumSelection - Fetches the catalog and sends one inline option per album.
// When there is nothing to choose from the phase is left unchanged, except that a
// pending album selection is always discarded.
func (e *ConversationEngine) promptAlbumSelection(ctx context.Context, session domain.Session) (domain.Session, []domain.Effect) {
	fallback := session
	if session.Phase == domain.PhaseAwaitingImage {
		fallback = session.Reset()
	}

	albums, err := e.catalog.ListAlbums(ctx)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"chat_id": session.ChatID}).Error("Failed to list albums")
		return fallback, []domain.Effect{domain.SendMessage(session.ChatID, msgCatalogFailed)}
	}
	if len(albums) == 0 {
		logrus.WithFields(logrus.Fields{"chat_id": session.ChatID}).Warn("Album catalog is empty")
		return fallback, []domain.Effect{domain.SendMessage(session.ChatID, msgNoAlbums)}
	}

	options := make([]domain.InlineOption, 0, len(albums))
	for _, album := range albums {
		options = append(options, domain.InlineOption{Text: album.Name, Payload: album.ID})
	}
	return session.AwaitAlbumSelection(), []domain.Effect{
		domain.SendMessage(session.ChatID, msgSelectAlbum, options...),
	}
}

// handleCallback - Album selection through the inline keyboard
func (e *ConversationEngine) handleCallback(ctx context.Context, session domain.Session, update domain.Update) (domain.Session, []domain.Effect) {
	if session.Phase != domain.PhaseAwaitingAlbumSelection {
		return session, []domain.Effect{domain.AnswerCallback(update.QueryID, msgStartFirst, true)}
	}

	// The catalog may have changed since the keyboard was sent
	albums, err := e.catalog.ListAlbums(ctx)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"chat_id": session.ChatID}).Error("Failed to list albums")
		return session, []domain.Effect{domain.AnswerCallback(update.QueryID, msgCatalogAlert, true)}
	}

	album, ok := domain.FindAlbum(albums, update.AlbumID)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"chat_id":  session.ChatID,
			"album_id": update.AlbumID,
		}).Info("Unrecognized album selection")
		return session, []domain.Effect{domain.AnswerCallback(update.QueryID, msgInvalidSelection, true)}
	}

	return session.AwaitImage(album.ID), []domain.Effect{
		domain.AnswerCallback(update.QueryID, msgAlbumSelected, false),
		domain.SendMessage(session.ChatID, fmt.Sprintf(msgSendImage, album.Name)),
	}
}

// handlePhoto - Fetch, measure and upload. Every outcome returns the chat to idle.
func (e *ConversationEngine) handlePhoto(ctx context.Context, session domain.Session, update domain.Update) (domain.Session, []domain.Effect) {
	if session.Phase != domain.PhaseAwaitingImage {
		return session, []domain.Effect{domain.SendMessage(session.ChatID, msgSelectAlbumFirst)}
	}

	fields := logrus.Fields{
		"chat_id":  session.ChatID,
		"album_id": session.SelectedAlbumID,
		"file_ref": update.FileRef,
	}

	image, err := e.fetcher.ResolveImage(ctx, update.FileRef)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Error("Failed to resolve image")
		return session.Reset(), []domain.Effect{domain.SendMessage(session.ChatID, msgImageFailed)}
	}

	record := domain.UploadRecord{
		Title:      domain.TitleFromCaption(update.Caption, e.defaultTitle),
		Resolution: image.Resolution(),
		AlbumID:    session.SelectedAlbumID,
		FileName:   imageFileName(image),
		ImageBytes: image.Bytes,
	}

	receipt, err := e.sink.Upload(ctx, record)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Error("Failed to upload image")
		return session.Reset(), []domain.Effect{domain.SendMessage(session.ChatID, msgUploadFailed)}
	}

	logrus.WithFields(fields).Infof("Uploaded %q (%s) as record %s", record.Title, record.Resolution, receipt.ID)
	e.recordHistory(ctx, session.ChatID, record, receipt)

	return session.Reset(), []domain.Effect{
		domain.SendMessage(session.ChatID, fmt.Sprintf(msgUploaded, record.Title, record.AlbumID, record.Resolution)),
	}
}

// recordHistory - Best effort, failures are only logged
func (e *ConversationEngine) recordHistory(ctx context.Context, chatID string, record domain.UploadRecord, receipt *domain.Receipt) {
	if e.history == nil {
		return
	}
	_, err := e.history.RecordUpload(ctx, domain.UploadEntryRequest{
		ChatID:         chatID,
		AlbumID:        record.AlbumID,
		Title:          record.Title,
		Resolution:     record.Resolution,
		RemoteRecordID: receipt.ID,
	})
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to record upload history")
	}
}

// parseCommand returns the lower-cased command word of text, without any
// "@BotName" suffix, or "" when text is not a command
func parseCommand(text string) string {
	parts := strings.Fields(text)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return ""
	}
	command, _, _ := strings.Cut(parts[0], "@")
	return strings.ToLower(command)
}

func imageFileName(image *domain.Image) string {
	ext := image.Format
	if ext == "" || ext == "jpeg" {
		ext = "jpg"
	}
	name := image.FileRef
	if name == "" {
		name = "image"
	}
	return name + "." + ext
}
