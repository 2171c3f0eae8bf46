// Package contact é o adapter HTTP do formulário de contato (POST /api/contact).
//
// Ele extrai o endereço do cliente, chama contact/application e traduz o
// resultado (ou o erro tipado) para status, corpo JSON e headers.
package contact
