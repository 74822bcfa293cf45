package notify

import "log"

// Sender entrega uma notificação ao cliente. Implementações reais (e-mail,
// WhatsApp) ficam fora deste módulo; o ledger nunca espera pela entrega.
type Sender interface {
	Send(n Notification) error
}

type Notification struct {
	To      string
	Subject string
	Body    string
}

// LogSender é o sender padrão em desenvolvimento.
type LogSender struct{}

func (LogSender) Send(n Notification) error {
	log.Printf("notify %s: %s", n.To, n.Subject)
	return nil
}

// Dispatcher envia notificações em background, fire-and-forget.
type Dispatcher struct {
	sender Sender
	queue  chan Notification
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Notification, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for n := range d.queue {
		if err := d.sender.Send(n); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(n Notification) {
	if n.To == "" {
		return
	}
	select {
	case d.queue <- n:
	default:
		// fila cheia → notificação é descartável, o ledger não depende dela
		log.Println("notify queue full, dropping notification")
	}
}
