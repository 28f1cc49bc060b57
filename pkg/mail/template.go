package mail

import (
	"fmt"
	"strings"

	"base97/queue"
)

// StoreInfo 邮件正文里用到的店铺固定信息
type StoreInfo struct {
	Name           string
	ClientURL      string
	SupportEmail   string
	AffiliateEmail string
}

// Welcome 注册欢迎邮件
func Welcome(store StoreInfo, ev queue.UserRegisteredEvent) (subject, html string) {
	subject = fmt.Sprintf("Welcome to %s – Your Journey Begins", store.Name)
	html = fmt.Sprintf(`
<h1>Welcome to %s</h1>
<p>Dear %s,</p>
<p>Thank you for joining the %s community. We're thrilled to have you on board and can't wait to serve you.</p>
<p>As a new member, you'll enjoy exclusive first-order discounts, priority customer support and early access to new arrivals.</p>
<p><a href="%s/shop">Explore Our Collection</a></p>
<p>Need help? Our support team is available at <a href="mailto:%s">%s</a>.</p>`,
		store.Name, ev.Name, store.Name, store.ClientURL, store.SupportEmail, store.SupportEmail)
	return subject, html
}

// ReviewThanks 评价致谢 + 推广资格提示, 每次评价都会发
func ReviewThanks(store StoreInfo, ev queue.ReviewCreatedEvent) (subject, html string) {
	subject = "Thank you for your review!"
	html = fmt.Sprintf(`
<h1>Thank You for Your Review!</h1>
<p>Hi %s,</p>
<p>Thank you for taking the time to review <strong>%s</strong>! We truly appreciate your feedback.</p>
<p>As a token of our appreciation, you're now eligible to
<a href="%s/affiliate/request">request an affiliate link</a>.</p>
<ul>
  <li>5%% discount on every product purchased through your link</li>
  <li>If more than 5 customers purchase through your link, we'll contact you to offer commission on future referrals</li>
</ul>
<p>– The %s Team</p>`,
		ev.Name, ev.ProductName, store.ClientURL, store.Name)
	return subject, html
}

// AffiliateApproved 推广申请通过, 发给顾客
func AffiliateApproved(store StoreInfo, ev queue.AffiliateApprovedEvent) (subject, html string) {
	subject = fmt.Sprintf("Your Exclusive %s Affiliate Program Access", store.Name)
	html = fmt.Sprintf(`
<h1>Welcome to Our Affiliate Program</h1>
<p>Dear %s,</p>
<p>We're thrilled to have you join the %s Affiliate Program. Here's everything you need to get started:</p>
<p><strong>Affiliate Code:</strong> <code>%s</code><br/>
<strong>User ID:</strong> %d</p>
<p>Your exclusive referral link:<br/>
<code>%s/checkout?aff=%s</code></p>
<p>*Recipients get 5%% off their first purchase</p>
<p>Questions? <a href="mailto:%s">Contact our affiliate team</a>.</p>`,
		ev.Name, store.Name, ev.Code, ev.UserID, store.ClientURL, ev.Code, store.AffiliateEmail)
	return subject, html
}

// AffiliateApprovedAdmin 推广通过的管理员抄送
func AffiliateApprovedAdmin(store StoreInfo, ev queue.AffiliateApprovedEvent) (subject, html string) {
	subject = fmt.Sprintf("Affiliate Approved | %s | Code: %s", ev.Name, ev.Code)
	html = fmt.Sprintf(`
<h1>Affiliate Request Approved</h1>
<p>Request #%d</p>
<p><strong>Name:</strong> %s<br/>
<strong>ID:</strong> %d<br/>
<strong>Email:</strong> %s</p>
<p><strong>Affiliate Code:</strong> <code>%s</code></p>
<p>This affiliate can now access their dashboard and start generating referrals.</p>`,
		ev.RequestID, ev.Name, ev.UserID, ev.Email, ev.Code)
	return subject, html
}

// AffiliateRejected 推广申请被拒绝
func AffiliateRejected(store StoreInfo, ev queue.AffiliateRejectedEvent) (subject, html string) {
	subject = "Affiliate Request Update"
	html = fmt.Sprintf(`
<h1>Affiliate Request Update</h1>
<p>Hi %s,</p>
<p>We regret to inform you that your affiliate request <strong>#%d</strong> was not approved.</p>
<p>If you believe this decision was made in error or if you'd like guidance on how to strengthen
a future application, please reach out to our support team.</p>
<p><a href="mailto:%s">Contact Support</a></p>`,
		ev.Name, ev.RequestID, store.SupportEmail)
	return subject, html
}

func itemsHTML(items []queue.OrderLineSnapshot) string {
	var b strings.Builder
	for _, i := range items {
		fmt.Fprintf(&b, "<li>Product ID %d — Size: %s — Qty: %d — PKR %.2f</li>", i.ProductID, i.Size, i.Qty, i.Price)
	}
	return b.String()
}

// OrderConfirmation 下单确认, 发给顾客, 有折扣时附折扣行
func OrderConfirmation(store StoreInfo, ev queue.OrderCreatedEvent) (subject, html string) {
	subject = fmt.Sprintf("Your %s Order #%d", store.Name, ev.OrderID)

	discountHTML := ""
	if ev.Discount > 0 {
		discountHTML = fmt.Sprintf("<p>You saved PKR %.2f (5%%) with affiliate code <strong>%s</strong>.</p>", ev.Discount, ev.AffiliateCode)
	}
	payment := ev.PaymentMethod
	if payment == "COD" {
		payment = "Cash on Delivery"
	}
	html = fmt.Sprintf(`
<h1>%s Order Confirmation</h1>
<p>Hi %s,</p>
<p>Thank you for choosing %s! We've received your order <strong>#%d</strong>. Below are the details:</p>
<ul>%s</ul>
<p>Subtotal: PKR %.2f<br/>
Shipping: PKR %.2f</p>
%s
<p>Total Paid: PKR %.2f</p>
<p>Shipping to:<br/>%s, %s,<br/>%s, %s</p>
<p>Payment Method: %s</p>
<p>Leave a review to get affiliated and enjoy discounts.</p>
<p>We'll send you another update once your package ships.</p>
<p>– The %s Team</p>`,
		store.Name, ev.CustomerName, store.Name, ev.OrderID, itemsHTML(ev.Items),
		ev.ItemsPrice, ev.ShippingPrice, discountHTML, ev.TotalPrice,
		ev.Address, ev.City, ev.PostalCode, ev.Country, payment, store.Name)
	return subject, html
}

// OrderCreatedAdmin 新订单的管理员通知, 用到推广码时附归属人
func OrderCreatedAdmin(store StoreInfo, ev queue.OrderCreatedEvent) (subject, html string) {
	subject = fmt.Sprintf("New Order #%d Placed", ev.OrderID)

	affiliateInfo := ""
	if ev.AffiliateOwnerID != 0 {
		affiliateInfo = fmt.Sprintf(
			"<p>Affiliate code <strong>%s</strong> used by this order.</p><p>Link owner: %s (ID %d).</p>",
			ev.AffiliateCode, ev.AffiliateOwnerName, ev.AffiliateOwnerID)
	}
	html = fmt.Sprintf(`
<h2>New Order Placed – #%d</h2>
<p>Order Details:</p>
<ul>%s</ul>
<p><strong>Total:</strong> PKR %.2f</p>
<p><strong>Customer:</strong> %s (<a href="mailto:%s">%s</a>)</p>
%s
<p>This is an automated alert from the %s Admin System.</p>`,
		ev.OrderID, itemsHTML(ev.Items), ev.TotalPrice,
		ev.CustomerName, ev.CustomerEmail, ev.CustomerEmail, affiliateInfo, store.Name)
	return subject, html
}

// PaymentConfirmed 订单转 Paid 时发送
func PaymentConfirmed(store StoreInfo, ev queue.OrderStatusChangedEvent) (subject, html string) {
	subject = fmt.Sprintf("Payment Confirmed | Order #%d", ev.OrderID)
	html = fmt.Sprintf(`
<h1>Payment Received</h1>
<p>Dear %s,</p>
<p>We've successfully processed your payment for <strong>order #%d</strong>.
Your order is now being prepared with care.</p>
<p><a href="%s/orders/%d">View Order Details</a></p>`,
		ev.CustomerName, ev.OrderID, store.ClientURL, ev.OrderID)
	return subject, html
}

// OrderDispatched 订单转 Dispatched 时发送, 重复置 Dispatched 会重发
func OrderDispatched(store StoreInfo, ev queue.OrderStatusChangedEvent) (subject, html string) {
	subject = fmt.Sprintf("Your Order #%d Is On The Way!", ev.OrderID)
	html = fmt.Sprintf(`
<h1>Your Order Is On The Move</h1>
<p>Dear %s,</p>
<p>Great news! Your %s order <strong>#%d</strong> has left our warehouse and is now on its journey to you.</p>
<p><a href="%s/track/%d">Track Your Package</a></p>
<p>Expected delivery: 3-5 business days</p>`,
		ev.CustomerName, store.Name, ev.OrderID, store.ClientURL, ev.OrderID)
	return subject, html
}
