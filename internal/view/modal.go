package view

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"animalrescue/internal/content"
	"animalrescue/internal/domain"
	"animalrescue/internal/donation"
	"animalrescue/internal/payment"
)

func donationModal(d donation.Snapshot, c *content.Catalog) g.Node {
	if !d.Visible {
		return nil
	}
	var body g.Node
	switch d.Step {
	case domain.StepProcessing:
		body = processingStep()
	case domain.StepSuccess:
		body = successStep(d)
	case domain.StepFailed:
		body = failedStep(d)
	default:
		body = detailsStep(d, c)
	}
	return g.Group([]g.Node{
		Form(Method("post"), Action("/donate/close"), Class("modal__backdrop"),
			Button(Type("submit"), g.Attr("aria-label", "Close donation dialog")),
		),
		Div(ID("donate"), Class("modal modal--"+string(d.Step)),
			g.Attr("role", "dialog"), g.Attr("aria-modal", "true"), g.Attr("aria-labelledby", "donate-title"),
			Div(Class("modal__header"),
				H3(ID("donate-title"), g.Text(modalTitle(d))),
				Form(Method("post"), Action("/donate/close"),
					Button(Type("submit"), Class("btn btn--link"), g.Attr("aria-label", "Close"), icon("x", 20)),
				),
			),
			Div(Class("modal__body"), body),
			g.If(d.Step == domain.StepDetails,
				Div(Class("modal__footer"), icon("lock", 12), g.Text(" 256-bit SSL Encrypted")),
			),
		),
	})
}

func modalTitle(d donation.Snapshot) string {
	if d.Sponsor != "" {
		return "Sponsor a " + d.Sponsor
	}
	return "Make a Donation"
}

func detailsStep(d donation.Snapshot, c *content.Catalog) g.Node {
	errs := d.FieldErrors
	return Form(Method("post"), Action("/donate/submit"), Class("modal__form"),
		// Enter in a field submits through the first submit button
		Button(Type("submit"), Class("visually-hidden"), g.Attr("tabindex", "-1"), g.Attr("aria-hidden", "true"), g.Text("Donate")),
		g.If(d.Sponsor != "", sponsorNote(d.Sponsor, c)),
		Div(Class("amounts"),
			g.Group(g.Map(domain.PresetAmounts, func(amount int) g.Node {
				class := "amount"
				if amount == d.Amount {
					class += " amount--selected"
				}
				return Button(Type("submit"), Class(class),
					Name("amount"), Value(strconv.Itoa(amount)),
					g.Attr("formaction", "/donate/amount"), g.Attr("formnovalidate"),
					g.Attr("aria-pressed", strconv.FormatBool(amount == d.Amount)),
					g.Text(Money(amount)),
				)
			})),
		),
		g.If(errs["amount"] != "", P(Class("field__error"), g.Text(errs["amount"]))),
		// after the preset buttons so a pressed button's value comes first
		Input(Type("hidden"), Name("amount"), Value(strconv.Itoa(d.Amount))),
		field("card_number", "Card Number", "0000 0000 0000 0000", errs["card_number"], g.Attr("autocomplete", "cc-number"), g.Attr("inputmode", "numeric")),
		Div(Class("field-row"),
			field("expiry", "Expiry", "MM/YY", errs["expiry"], g.Attr("autocomplete", "cc-exp")),
			field("cvc", "CVC", "123", errs["cvc"], g.Attr("autocomplete", "cc-csc"), g.Attr("inputmode", "numeric")),
		),
		Button(Type("submit"), Class("btn btn--primary btn--block"),
			g.Text("Donate "+Money(d.Amount)+" "), icon("heart", 18),
		),
	)
}

func sponsorNote(species string, c *content.Catalog) g.Node {
	a, ok := c.Animal(species)
	if !ok {
		return nil
	}
	return P(Class("modal__sponsor"), g.Text("Your gift supports "+a.Name+" the "+a.Species+"."))
}

func field(name, label, placeholder, errMsg string, extra ...g.Node) g.Node {
	return Label(Class("field"),
		Span(g.Text(label)),
		Input(Type("text"), Name(name), Placeholder(placeholder), Required(),
			g.If(errMsg != "", g.Attr("aria-invalid", "true")),
			g.Group(extra),
		),
		g.If(errMsg != "", Span(Class("field__error"), g.Text(errMsg))),
	)
}

func processingStep() g.Node {
	return Div(Class("modal__status"), g.Attr("aria-live", "polite"),
		Div(Class("spinner")),
		H4(g.Text("Processing secure payment...")),
	)
}

func successStep(d donation.Snapshot) g.Node {
	return Div(Class("modal__status"),
		Div(Class("modal__badge"), icon("check", 40)),
		H3(g.Text("Thank You!")),
		P(g.Text("Your donation of "+Money(d.Amount)+" has been received.")),
		receiptLine(d.Receipt),
		Form(Method("post"), Action("/donate/close"),
			Button(Type("submit"), Class("btn btn--ghost"), g.Text("Close")),
		),
	)
}

func receiptLine(r *payment.Receipt) g.Node {
	if r == nil {
		return nil
	}
	return P(Class("modal__receipt"), g.Text("Receipt "+r.ID))
}

func failedStep(d donation.Snapshot) g.Node {
	return Div(Class("modal__status"),
		Div(Class("modal__badge modal__badge--error"), icon("alert", 40)),
		H4(g.Text(d.Failure)),
		Form(Method("post"), Action("/donate/retry"),
			Button(Type("submit"), Class("btn btn--primary"), g.Text("Try again")),
		),
		Form(Method("post"), Action("/donate/close"),
			Button(Type("submit"), Class("btn btn--link"), g.Text("Close")),
		),
	)
}
