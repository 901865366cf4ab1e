// Package i18n holds the UI message catalog and Accept-Language negotiation.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Default is used when negotiation finds no supported language.
const Default = "en"

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

var catalog = map[string]map[string]string{
	"en": {
		"required":               "Required",
		"invalid":                "Invalid value",
		"email":                  "Must be a valid email",
		"url":                    "Must be a valid URL",
		"min":                    "Too small",
		"max":                    "Too large",
		"invalid_credentials":    "Invalid email or password",
		"export_in_progress":     "An export is already running",
		"not_found":              "Not found",
		"invoice":                "Invoice",
		"invoices":               "Invoices",
		"bill_to":                "Bill To",
		"from":                   "From",
		"description":            "Description",
		"quantity":               "Qty",
		"unit_price":             "Unit Price",
		"amount":                 "Amount",
		"subtotal":               "Subtotal",
		"tax":                    "Tax",
		"total":                  "Total",
		"notes":                  "Notes",
		"issue_date":             "Issue Date",
		"due_date":               "Due Date",
		"status_draft":           "Draft",
		"status_pending":         "Pending",
		"status_paid":            "Paid",
		"total_revenue":          "Total Revenue",
		"pending_amount":         "Pending",
		"unread_messages":        "Unread Messages",
		"message_sent":           "Thanks! Your message has been sent.",
		"download_pdf":           "Download PDF",
		"download_image":         "Download Image",
		"print":                  "Print",
		"save":                   "Save",
		"delete":                 "Delete",
		"login":                  "Log in",
		"logout":                 "Log out",
		"dashboard":              "Dashboard",
		"portfolio":              "Portfolio",
		"template_modern":        "Modern",
		"template_minimalist":    "Minimalist",
		"template_professional":  "Professional",
		"out_of_range":           "Out of range",
		"invalid_status":         "Unknown status",
		"unauthorized":           "Please sign in",
		"forbidden":              "You cannot access this resource",
		"bad_request":            "Malformed request",
		"internal_error":         "Something went wrong",
		"weak_password":          "Password is too short",
		"export_failed":          "Export failed, please try again",
		"invoice_saved":          "Invoice saved",
		"invoice_deleted":        "Invoice deleted",
		"ai_rate_limited":        "The image service is busy. Please wait a minute and try again.",
		"ai_not_configured":      "AI helpers are not configured",
		"ai_empty_response":      "The assistant returned no answer",
		"invalid_image":          "Unsupported image",
		"unsupported_media_type": "Unsupported file type",
		"upload_failed":          "Upload failed",
		"reply_sent":             "Reply sent",
		"unknown_collection":     "Unknown collection",
	},
	"fr": {
		"required":               "Requis",
		"invalid":                "Valeur invalide",
		"email":                  "Email invalide",
		"url":                    "URL invalide",
		"min":                    "Trop petit",
		"max":                    "Trop grand",
		"invalid_credentials":    "Email ou mot de passe invalide",
		"export_in_progress":     "Un export est déjà en cours",
		"not_found":              "Introuvable",
		"invoice":                "Facture",
		"invoices":               "Factures",
		"bill_to":                "Facturer à",
		"from":                   "De",
		"description":            "Description",
		"quantity":               "Qté",
		"unit_price":             "Prix unitaire",
		"amount":                 "Montant",
		"subtotal":               "Sous-total",
		"tax":                    "Taxe",
		"total":                  "Total",
		"notes":                  "Notes",
		"issue_date":             "Date d'émission",
		"due_date":               "Échéance",
		"status_draft":           "Brouillon",
		"status_pending":         "En attente",
		"status_paid":            "Payée",
		"total_revenue":          "Chiffre d'affaires",
		"pending_amount":         "En attente",
		"unread_messages":        "Messages non lus",
		"message_sent":           "Merci ! Votre message a été envoyé.",
		"download_pdf":           "Télécharger le PDF",
		"download_image":         "Télécharger l'image",
		"print":                  "Imprimer",
		"save":                   "Enregistrer",
		"delete":                 "Supprimer",
		"login":                  "Connexion",
		"logout":                 "Déconnexion",
		"dashboard":              "Tableau de bord",
		"portfolio":              "Portfolio",
		"template_modern":        "Moderne",
		"template_minimalist":    "Minimaliste",
		"template_professional":  "Professionnel",
		"out_of_range":           "Hors limites",
		"invalid_status":         "Statut inconnu",
		"unauthorized":           "Veuillez vous connecter",
		"forbidden":              "Accès refusé",
		"bad_request":            "Requête invalide",
		"internal_error":         "Une erreur est survenue",
		"weak_password":          "Mot de passe trop court",
		"export_failed":          "L'export a échoué, réessayez",
		"invoice_saved":          "Facture enregistrée",
		"invoice_deleted":        "Facture supprimée",
		"ai_rate_limited":        "Le service d'images est saturé. Patientez une minute puis réessayez.",
		"ai_not_configured":      "L'assistant IA n'est pas configuré",
		"ai_empty_response":      "L'assistant n'a rien répondu",
		"invalid_image":          "Image non prise en charge",
		"unsupported_media_type": "Type de fichier non pris en charge",
		"upload_failed":          "Échec de l'envoi",
		"reply_sent":             "Réponse envoyée",
		"unknown_collection":     "Collection inconnue",
	},
}

// DetectLanguage picks the best supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// T translates code into lang, falling back to the default language and then to code.
func T(lang, code string) string {
	if msg, ok := catalog[lang][code]; ok {
		return msg
	}
	if msg, ok := catalog[Default][code]; ok {
		return msg
	}
	return code
}

type langKey struct{}

// WithLang stores the chosen language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the language stored by WithLang, or "" if none.
func LangFromContext(ctx context.Context) string {
	lang, _ := ctx.Value(langKey{}).(string)
	return lang
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}
