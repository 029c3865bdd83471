package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date é uma data de calendário, sem hora e sem fuso.
// Dois Date são iguais com == quando representam o mesmo dia.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf trunca t para o dia de calendário em que ele está escrito (no próprio fuso de t).
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate lê uma data no formato YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("data inválida %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays devolve a data n dias depois (ou antes, se n < 0), atravessando meses e anos.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Formatos aceitos para os timestamps do payload. O workflow nem sempre manda
// segundos ou fuso; sem fuso o valor é lido como UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateLayout,
}

// Timestamp é um instante opcional do payload. Só a parte de data importa para as regras.
type Timestamp struct {
	time.Time
}

// NewTimestamp embrulha t. Útil em testes e em quem monta Subscription na mão.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// ParseTimestamp tenta cada formato aceito até achar um que funcione.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("timestamp inválido %q", s)
}

// Date devolve a data de calendário do timestamp, descartando a hora.
func (t Timestamp) Date() Date {
	return DateOf(t.Time)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Acima deste valor, em módulo, um epoch numérico é lido como milissegundos.
const unixMillisThreshold = 2e10

// UnmarshalJSON aceita string em um dos formatos acima ou número Unix (UTC), inteiro ou
// fracionário, em segundos ou, se maior que unixMillisThreshold, em milissegundos.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] != '"' {
		epoch, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("timestamp inválido %s", data)
		}
		t.Time = unixToTime(epoch)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func unixToTime(epoch float64) time.Time {
	whole := math.Floor(epoch)
	frac := epoch - whole
	if math.Abs(epoch) > unixMillisThreshold {
		return time.UnixMilli(int64(whole)).Add(time.Duration(math.Round(frac * 1e6))).UTC()
	}
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}
